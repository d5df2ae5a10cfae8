package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"catalog-audit/internal/domain"
)

// Config holds the tunable validation thresholds.
type Config struct {
	MinImages            int
	MinDescriptionLength int // counted on the raw markup text
	MinPrice             float64
}

func DefaultConfig() Config {
	return Config{
		MinImages:            1,
		MinDescriptionLength: 100,
		MinPrice:             0.01,
	}
}

// requiredMetafields are checked in this order; the second element is the
// label used in the issue message.
var requiredMetafields = [][2]string{
	{domain.MetafieldAuthor, "Author"},
	{domain.MetafieldLanguage, "Language"},
	{domain.MetafieldBinding, "Binding"},
	{domain.MetafieldPubDate, "Publication date"},
}

// Validator runs the fixed rule battery against one product at a time. It is
// stateless across products and never fails: any well-formed Product yields a
// (possibly empty) issue list.
type Validator struct {
	cfg Config
}

func New(cfg Config) *Validator {
	if cfg.MinImages <= 0 {
		cfg.MinImages = DefaultConfig().MinImages
	}
	if cfg.MinDescriptionLength <= 0 {
		cfg.MinDescriptionLength = DefaultConfig().MinDescriptionLength
	}
	if cfg.MinPrice <= 0 {
		cfg.MinPrice = DefaultConfig().MinPrice
	}
	return &Validator{cfg: cfg}
}

// Validate returns every issue found on the product. Products that are not
// active are never validated and return nil; unpublished records are the
// merchandiser's draft space, not audit territory.
func (v *Validator) Validate(p *domain.Product) []Issue {
	if p == nil || !p.IsActive() {
		return nil
	}

	var issues []Issue
	issues = append(issues, v.checkImages(p)...)
	issues = append(issues, v.checkDescription(p)...)
	issues = append(issues, v.checkPrice(p)...)
	issues = append(issues, v.checkCollections(p)...)
	issues = append(issues, v.checkTags(p)...)
	issues = append(issues, v.checkMetafields(p)...)
	issues = append(issues, v.checkVariants(p)...)
	issues = append(issues, v.checkImageAltText(p)...)
	return issues
}

func (v *Validator) checkImages(p *domain.Product) []Issue {
	n := len(p.Images)
	if n == 0 {
		return []Issue{errorIssue(KindNoImages, "Product has no images", nil)}
	}
	if n < v.cfg.MinImages {
		return []Issue{warningIssue(KindFewImages, "Product has fewer images than required", map[string]any{
			"found":   n,
			"minimum": v.cfg.MinImages,
		})}
	}
	return nil
}

func (v *Validator) checkDescription(p *domain.Product) []Issue {
	desc := p.Description
	if strings.TrimSpace(desc) == "" {
		return []Issue{errorIssue(KindMissingDescription, "Product has no description", nil)}
	}
	// Character count, not bytes. Accented text must not inflate the length.
	if length := utf8.RuneCountInString(desc); length < v.cfg.MinDescriptionLength {
		return []Issue{warningIssue(KindShortDescription, "Product description is too short", map[string]any{
			"length":  length,
			"minimum": v.cfg.MinDescriptionLength,
		})}
	}
	return nil
}

func (v *Validator) checkPrice(p *domain.Product) []Issue {
	amount, ok := p.MinPriceAmount()
	if !ok {
		return []Issue{errorIssue(KindMissingPrice, "Product has no price", nil)}
	}
	if amount < v.cfg.MinPrice {
		return []Issue{errorIssue(KindLowPrice, "Product price is below minimum", map[string]any{
			"price":   amount,
			"minimum": v.cfg.MinPrice,
		})}
	}
	return nil
}

func (v *Validator) checkCollections(p *domain.Product) []Issue {
	if len(p.Collections) == 0 {
		return []Issue{errorIssue(KindNoCollections, "Product is not in any collection", nil)}
	}
	return nil
}

func (v *Validator) checkTags(p *domain.Product) []Issue {
	switch len(p.Tags) {
	case 0:
		return []Issue{errorIssue(KindNoTags, "Product has no tags assigned", nil)}
	case 1:
		return []Issue{warningIssue(KindFewTags, "Product has only one tag", map[string]any{
			"tags": append([]string(nil), p.Tags...),
		})}
	case 2:
		return []Issue{warningIssue(KindFewTags, "Product has only two tags", map[string]any{
			"tags": append([]string(nil), p.Tags...),
		})}
	}
	return nil
}

func (v *Validator) checkMetafields(p *domain.Product) []Issue {
	var issues []Issue
	for _, mf := range requiredMetafields {
		key, label := mf[0], mf[1]
		if strings.TrimSpace(p.Metafield(domain.MetafieldNamespace, key)) == "" {
			issues = append(issues, errorIssue(KindMissingMetafield,
				fmt.Sprintf("Product missing metafield: %s", label),
				map[string]any{"field": key}))
		}
	}
	return issues
}

func (v *Validator) checkVariants(p *domain.Product) []Issue {
	if len(p.Variants) == 0 {
		return []Issue{errorIssue(KindNoVariants, "Product has no variants", nil)}
	}

	var issues []Issue
	for _, variant := range p.Variants {
		details := map[string]any{"variant_id": variant.ID}

		if strings.TrimSpace(variant.Barcode) == "" {
			issues = append(issues, errorIssue(KindMissingBarcode, "Variant is missing a barcode", details))
		}
		if strings.TrimSpace(variant.SKU) == "" {
			issues = append(issues, errorIssue(KindMissingSKU, "Variant is missing a SKU", details))
		}
		if variant.Taxable == nil {
			issues = append(issues, errorIssue(KindTaxableUnset, "Variant taxable status is not set", details))
		}

		loc := variant.Location
		if loc == nil {
			continue
		}
		locDetails := map[string]any{"variant_id": variant.ID, "location": loc.Name}
		// In-house fulfillment only: a third-party fulfillment service means
		// the variant was set up wrong.
		if loc.IsFulfillmentService {
			issues = append(issues, errorIssue(KindFulfillmentService, "Variant is assigned to a fulfillment service location", locDetails))
		}
		if !loc.FulfillsOnlineOrders {
			issues = append(issues, errorIssue(KindNoOnlineOrders, "Variant location does not fulfill online orders", locDetails))
		}
		if !loc.ShipsInventory {
			issues = append(issues, errorIssue(KindNoShipping, "Variant location does not ship inventory", locDetails))
		}
	}
	return issues
}

// ExpectedAltText is the alt text every store image must carry, by 1-based
// position. The correction-file image rows are generated from this same rule
// so that an unmodified re-import passes validation.
func ExpectedAltText(position int, title string) string {
	if position == 1 {
		return "Book Cover: " + title
	}
	return "presentation image"
}

func (v *Validator) checkImageAltText(p *domain.Product) []Issue {
	var issues []Issue
	for i, img := range p.Images {
		position := i + 1
		expected := ExpectedAltText(position, p.Title)
		current := img.Alt

		details := map[string]any{
			"position": position,
			"expected": expected,
			"current":  current,
		}

		if position == 1 {
			// first image match is case-sensitive
			if current == "" {
				issues = append(issues, errorIssue(KindImageAltText, "First image missing alt text", details))
			} else if current != expected {
				issues = append(issues, errorIssue(KindImageAltText, "First image has incorrect alt text", details))
			}
			continue
		}

		if current == "" {
			issues = append(issues, errorIssue(KindImageAltText,
				fmt.Sprintf("Image %d missing alt text", position), details))
		} else if !strings.EqualFold(current, expected) {
			issues = append(issues, errorIssue(KindImageAltText,
				fmt.Sprintf("Image %d has incorrect alt text", position), details))
		}
	}
	return issues
}
