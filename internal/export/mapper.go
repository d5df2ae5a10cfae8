package export

import (
	"strconv"
	"strings"

	"catalog-audit/internal/domain"
	"catalog-audit/internal/tags"
	"catalog-audit/internal/validation"
)

// Bulk-import column names. Keep the spelling EXACT: the import pipeline
// matches headers literally, metafield columns included.
const (
	ColHandle      = "Handle"
	ColTitle       = "Title"
	ColBody        = "Body (HTML)"
	ColTags        = "Tags"
	ColSKU         = "Variant SKU"
	ColBarcode     = "Variant Barcode"
	ColPrice       = "Variant Price"
	ColFulfillment = "Variant Fulfillment Service"
	ColTaxable     = "Variant Taxable"
	ColImagePos    = "Image Position"
	ColImageSrc    = "Image Src"
	ColImageAlt    = "Image Alt Text"

	ColAuthor   = "Author (product.metafields.custom.author)"
	ColLanguage = "Language (product.metafields.custom.language)"
	ColBinding  = "Binding (product.metafields.custom.binding)"
	ColPubDate  = "Publication Date (product.metafields.custom.pub_date)"
)

// Row is one line of the correction-import file, keyed by column name.
// Rows are write-only: built, serialized, discarded.
type Row map[string]string

// Mapper turns a flagged product and its issues into pre-filled correction
// rows an operator can edit and re-import.
type Mapper struct {
	classifier *tags.Classifier
}

func NewMapper(classifier *tags.Classifier) *Mapper {
	if classifier == nil {
		classifier = tags.NewClassifier()
	}
	return &Mapper{classifier: classifier}
}

// BuildRows returns the core correction row followed by one row per image in
// position order.
func (m *Mapper) BuildRows(p *domain.Product, issues []validation.Issue) []Row {
	if p == nil {
		return nil
	}

	rows := make([]Row, 0, 1+len(p.Images))
	rows = append(rows, m.coreRow(p, issues))
	rows = append(rows, m.imageRows(p)...)
	return rows
}

// columnForIssue routes an issue to the import column it corrects, plus the
// default value pre-filled there ("" when the operator must supply one). The
// routing key is the issue's Kind, never its message text.
func columnForIssue(issue validation.Issue) (column, value string) {
	switch issue.Kind {
	case validation.KindMissingDescription, validation.KindShortDescription:
		return ColBody, ""
	case validation.KindMissingPrice, validation.KindLowPrice:
		return ColPrice, ""
	case validation.KindNoTags, validation.KindFewTags:
		return ColTags, ""
	case validation.KindMissingSKU:
		return ColSKU, ""
	case validation.KindMissingBarcode:
		return ColBarcode, ""
	case validation.KindFulfillmentService, validation.KindNoOnlineOrders, validation.KindNoShipping:
		return ColFulfillment, "manual"
	case validation.KindTaxableUnset:
		return ColTaxable, "true"
	case validation.KindMissingMetafield:
		field, _ := issue.Details["field"].(string)
		switch field {
		case domain.MetafieldAuthor:
			return ColAuthor, ""
		case domain.MetafieldLanguage:
			return ColLanguage, ""
		case domain.MetafieldBinding:
			return ColBinding, ""
		case domain.MetafieldPubDate:
			return ColPubDate, ""
		}
	}
	return "", ""
}

func (m *Mapper) coreRow(p *domain.Product, issues []validation.Issue) Row {
	row := Row{}

	// Mark every correction target first; product data fills real values in
	// over the top where it has them.
	for _, issue := range issues {
		col, value := columnForIssue(issue)
		if col == "" {
			continue
		}
		if _, present := row[col]; !present {
			row[col] = value
		}
	}

	var sku, barcode, price string
	if variant := p.FirstVariant(); variant != nil {
		sku = strings.TrimSpace(variant.SKU)
		barcode = strings.TrimSpace(variant.Barcode)
		price = variant.Price
	}
	// A 978/979 prefix that is not exactly 13 characters is a corrupt ISBN:
	// discard it rather than guess a correction.
	if (strings.HasPrefix(barcode, "978") || strings.HasPrefix(barcode, "979")) && len(barcode) != 13 {
		barcode = ""
	}

	transformed, metafields := m.transformTags(p.Tags)

	row[ColHandle] = p.Handle
	row[ColTitle] = p.Title
	row[ColBody] = p.Description
	row[ColTags] = strings.Join(transformed, ", ")
	row[ColSKU] = sku
	row[ColBarcode] = barcode
	row[ColPrice] = price
	row[ColFulfillment] = "manual"

	for col, value := range metafields {
		row[col] = value
	}

	// The SKU doubles as the author code upstream; mirror it into the author
	// metafield whenever present.
	if sku != "" {
		row[ColAuthor] = sku
	}

	return row
}

// transformTags runs every tag through the classifier: date tags are
// canonicalized in place, binding/language tags pass through but also land in
// their metafield column, anything else passes through unchanged. Output
// order is input order.
func (m *Mapper) transformTags(in []string) ([]string, map[string]string) {
	out := make([]string, 0, len(in))
	metafields := map[string]string{}
	var languages []string

	for _, tag := range in {
		if date, ok := m.classifier.DateTag(tag); ok {
			out = append(out, date.Canonical)
			metafields[ColPubDate] = date.ISO
			continue
		}
		if binding, ok := m.classifier.Binding(tag); ok {
			metafields[ColBinding] = binding
			out = append(out, tag)
			continue
		}
		if language, ok := m.classifier.Language(tag); ok {
			languages = append(languages, language)
			out = append(out, tag)
			continue
		}
		out = append(out, tag)
	}

	if len(languages) > 0 {
		quoted := make([]string, len(languages))
		for i, lang := range languages {
			quoted[i] = `"` + lang + `"`
		}
		metafields[ColLanguage] = "[" + strings.Join(quoted, ", ") + "]"
	}

	return out, metafields
}

// imageRows emits one row per image in 1-based position order. Alt text comes
// from the validator's rule, so re-importing the file unmodified passes the
// alt-text check.
func (m *Mapper) imageRows(p *domain.Product) []Row {
	rows := make([]Row, 0, len(p.Images))
	for i, img := range p.Images {
		position := i + 1
		rows = append(rows, Row{
			ColHandle:   p.Handle,
			ColTitle:    p.Title,
			ColImagePos: strconv.Itoa(position),
			ColImageSrc: img.Src,
			ColImageAlt: validation.ExpectedAltText(position, p.Title),
		})
	}
	return rows
}
