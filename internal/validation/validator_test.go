package validation

import (
	"strings"
	"testing"

	"catalog-audit/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

// goodLocation is a correctly configured in-house fulfillment location.
func goodLocation() *domain.Location {
	return &domain.Location{
		Name:                 "Store",
		IsFulfillmentService: false,
		FulfillsOnlineOrders: true,
		ShipsInventory:       true,
		Active:               true,
	}
}

// cleanProduct passes every check with the default config.
func cleanProduct() domain.Product {
	return domain.Product{
		ID:     "gid://shopify/Product/1",
		Title:  "The Art of Simple Food",
		Handle: "the-art-of-simple-food",
		Status: "ACTIVE",
		Description: "A definitive guide to cooking simple seasonal food at home, " +
			"with hundreds of recipes and lessons covering everything from pantry staples to full menus.",
		Images: []domain.Image{
			{Src: "https://cdn.example.com/1.jpg", Alt: "Book Cover: The Art of Simple Food"},
			{Src: "https://cdn.example.com/2.jpg", Alt: "presentation image"},
		},
		Tags:        []string{"cookbooks", "H", "3-5-2024"},
		MinPrice:    "35.00",
		Collections: []string{"All Books"},
		Metafields: map[string]string{
			"custom.author":   "Waters, Alice",
			"custom.language": "English",
			"custom.binding":  "Hardcover",
			"custom.pub_date": "2024-03-05",
		},
		Variants: []domain.Variant{
			{
				ID:       "gid://shopify/ProductVariant/11",
				SKU:      "WATERS01",
				Barcode:  "9780307336798",
				Price:    "35.00",
				Taxable:  boolPtr(true),
				Location: goodLocation(),
			},
		},
	}
}

func issuesByKind(issues []Issue, kind Kind) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}

func TestValidateCleanProduct(t *testing.T) {
	v := New(DefaultConfig())
	p := cleanProduct()

	issues := v.Validate(&p)
	if len(issues) != 0 {
		t.Errorf("Validate() on clean product returned %d issues: %+v", len(issues), issues)
	}
}

func TestValidateInactiveGate(t *testing.T) {
	v := New(DefaultConfig())

	for _, status := range []string{"DRAFT", "ARCHIVED", ""} {
		// Otherwise completely broken product: the gate must still win.
		p := domain.Product{Status: status}
		if issues := v.Validate(&p); len(issues) != 0 {
			t.Errorf("Validate() with status %q returned %d issues, want 0", status, len(issues))
		}
	}

	if issues := v.Validate(nil); issues != nil {
		t.Errorf("Validate(nil) = %+v, want nil", issues)
	}
}

func TestCheckImages(t *testing.T) {
	v := New(Config{MinImages: 2, MinDescriptionLength: 100, MinPrice: 0.01})

	p := cleanProduct()
	p.Images = nil
	issues := v.Validate(&p)
	img := issuesByKind(issues, KindNoImages)
	if len(img) != 1 || img[0].Severity != SeverityError {
		t.Fatalf("zero images: got %+v, want exactly one error", img)
	}
	if len(issuesByKind(issues, KindFewImages)) != 0 {
		t.Error("zero images also produced a few-images warning")
	}

	p = cleanProduct()
	p.Images = p.Images[:1]
	issues = v.Validate(&p)
	few := issuesByKind(issues, KindFewImages)
	if len(few) != 1 || few[0].Severity != SeverityWarning {
		t.Fatalf("one image under minimum 2: got %+v, want one warning", few)
	}
	if few[0].Details["found"] != 1 {
		t.Errorf("few-images details found = %v, want 1", few[0].Details["found"])
	}
}

func TestCheckDescription(t *testing.T) {
	v := New(DefaultConfig())

	p := cleanProduct()
	p.Description = ""
	issues := issuesByKind(v.Validate(&p), KindMissingDescription)
	if len(issues) != 1 || issues[0].Severity != SeverityError {
		t.Fatalf("missing description: got %+v, want one error", issues)
	}

	p = cleanProduct()
	p.Description = "<p>Too short.</p>"
	short := issuesByKind(v.Validate(&p), KindShortDescription)
	if len(short) != 1 || short[0].Severity != SeverityWarning {
		t.Fatalf("short description: got %+v, want one warning", short)
	}
	if short[0].Details["length"] != len("<p>Too short.</p>") {
		t.Errorf("short description length detail = %v", short[0].Details["length"])
	}

	// Accented text is two bytes per character in UTF-8; the threshold counts
	// characters, so 60 of them stay under a minimum of 100.
	p = cleanProduct()
	p.Description = strings.Repeat("é", 60)
	accented := issuesByKind(v.Validate(&p), KindShortDescription)
	if len(accented) != 1 || accented[0].Severity != SeverityWarning {
		t.Fatalf("60-character accented description: got %+v, want one warning", accented)
	}
	if accented[0].Details["length"] != 60 {
		t.Errorf("accented description length detail = %v, want 60", accented[0].Details["length"])
	}

	p = cleanProduct()
	p.Description = strings.Repeat("é", 100)
	if issues := issuesByKind(v.Validate(&p), KindShortDescription); len(issues) != 0 {
		t.Errorf("100-character accented description: got %+v, want none", issues)
	}
}

func TestCheckPrice(t *testing.T) {
	v := New(DefaultConfig())

	p := cleanProduct()
	p.MinPrice = ""
	if issues := issuesByKind(v.Validate(&p), KindMissingPrice); len(issues) != 1 {
		t.Fatalf("missing price: got %+v, want one error", issues)
	}

	p = cleanProduct()
	p.MinPrice = "0.00"
	low := issuesByKind(v.Validate(&p), KindLowPrice)
	if len(low) != 1 || low[0].Severity != SeverityError {
		t.Fatalf("zero price: got %+v, want one error", low)
	}
}

func TestCheckCollections(t *testing.T) {
	v := New(DefaultConfig())

	p := cleanProduct()
	p.Collections = nil
	if issues := issuesByKind(v.Validate(&p), KindNoCollections); len(issues) != 1 {
		t.Fatalf("no collections: got %+v, want one error", issues)
	}
}

func TestCheckTags(t *testing.T) {
	v := New(DefaultConfig())

	p := cleanProduct()
	p.Tags = nil
	none := issuesByKind(v.Validate(&p), KindNoTags)
	if len(none) != 1 || none[0].Severity != SeverityError {
		t.Fatalf("no tags: got %+v, want one error", none)
	}
	if none[0].Message != "Product has no tags assigned" {
		t.Errorf("no-tags message = %q", none[0].Message)
	}

	p = cleanProduct()
	p.Tags = []string{"cookbooks"}
	one := issuesByKind(v.Validate(&p), KindFewTags)
	if len(one) != 1 || one[0].Severity != SeverityWarning {
		t.Fatalf("one tag: got %+v, want one warning", one)
	}

	p = cleanProduct()
	p.Tags = []string{"cookbooks", "baking"}
	two := issuesByKind(v.Validate(&p), KindFewTags)
	if len(two) != 1 {
		t.Fatalf("two tags: got %+v, want one warning", two)
	}
	tagsDetail, _ := two[0].Details["tags"].([]string)
	if len(tagsDetail) != 2 {
		t.Errorf("two-tags details = %v, want both tags", two[0].Details["tags"])
	}

	p = cleanProduct()
	p.Tags = []string{"cookbooks", "baking", "pastry"}
	if issues := issuesByKind(v.Validate(&p), KindFewTags); len(issues) != 0 {
		t.Errorf("three tags: got %+v, want none", issues)
	}
}

func TestCheckMetafields(t *testing.T) {
	v := New(DefaultConfig())

	p := cleanProduct()
	delete(p.Metafields, "custom.binding")
	p.Metafields["custom.language"] = "  "

	issues := issuesByKind(v.Validate(&p), KindMissingMetafield)
	if len(issues) != 2 {
		t.Fatalf("got %d metafield issues, want 2: %+v", len(issues), issues)
	}

	fields := map[string]bool{}
	for _, is := range issues {
		if is.Severity != SeverityError {
			t.Errorf("metafield issue severity = %s, want error", is.Severity)
		}
		if f, ok := is.Details["field"].(string); ok {
			fields[f] = true
		}
	}
	if !fields["language"] || !fields["binding"] {
		t.Errorf("metafield issue fields = %v, want language and binding", fields)
	}
}

func TestCheckVariants(t *testing.T) {
	v := New(DefaultConfig())

	p := cleanProduct()
	p.Variants = nil
	issues := v.Validate(&p)
	if got := issuesByKind(issues, KindNoVariants); len(got) != 1 {
		t.Fatalf("no variants: got %+v, want one error", got)
	}
	// barcode/SKU checks are skipped entirely
	if got := issuesByKind(issues, KindMissingBarcode); len(got) != 0 {
		t.Errorf("no-variants run still produced barcode issues: %+v", got)
	}

	p = cleanProduct()
	p.Variants[0].Barcode = ""
	p.Variants[0].SKU = " "
	p.Variants[0].Taxable = nil
	issues = v.Validate(&p)
	for _, kind := range []Kind{KindMissingBarcode, KindMissingSKU, KindTaxableUnset} {
		got := issuesByKind(issues, kind)
		if len(got) != 1 || got[0].Severity != SeverityError {
			t.Errorf("%s: got %+v, want one error", kind, got)
		}
		if got[0].Details["variant_id"] != "gid://shopify/ProductVariant/11" {
			t.Errorf("%s details variant_id = %v", kind, got[0].Details["variant_id"])
		}
	}

	// explicit false is a value, not an omission
	p = cleanProduct()
	p.Variants[0].Taxable = boolPtr(false)
	if got := issuesByKind(v.Validate(&p), KindTaxableUnset); len(got) != 0 {
		t.Errorf("taxable=false flagged as unset: %+v", got)
	}
}

func TestCheckVariantLocation(t *testing.T) {
	v := New(DefaultConfig())

	p := cleanProduct()
	p.Variants[0].Location = &domain.Location{
		Name:                 "Acme Fulfillment",
		IsFulfillmentService: true,
		FulfillsOnlineOrders: false,
		ShipsInventory:       false,
	}
	issues := v.Validate(&p)
	for _, kind := range []Kind{KindFulfillmentService, KindNoOnlineOrders, KindNoShipping} {
		got := issuesByKind(issues, kind)
		if len(got) != 1 || got[0].Severity != SeverityError {
			t.Errorf("%s: got %+v, want one error", kind, got)
		}
	}

	// no location descriptor at all: location checks are skipped
	p = cleanProduct()
	p.Variants[0].Location = nil
	issues = v.Validate(&p)
	for _, kind := range []Kind{KindFulfillmentService, KindNoOnlineOrders, KindNoShipping} {
		if got := issuesByKind(issues, kind); len(got) != 0 {
			t.Errorf("%s fired without a location: %+v", kind, got)
		}
	}
}

func TestCheckImageAltText(t *testing.T) {
	v := New(DefaultConfig())

	p := cleanProduct()
	p.Images[0].Alt = ""
	issues := issuesByKind(v.Validate(&p), KindImageAltText)
	if len(issues) != 1 {
		t.Fatalf("missing first alt text: got %+v, want one error", issues)
	}
	if issues[0].Message != "First image missing alt text" {
		t.Errorf("message = %q", issues[0].Message)
	}
	if issues[0].Details["expected"] != "Book Cover: The Art of Simple Food" {
		t.Errorf("expected detail = %v", issues[0].Details["expected"])
	}

	// first image comparison is case-sensitive
	p = cleanProduct()
	p.Images[0].Alt = "book cover: The Art of Simple Food"
	if issues := issuesByKind(v.Validate(&p), KindImageAltText); len(issues) != 1 {
		t.Fatalf("case-mismatched first alt text: got %+v, want one error", issues)
	}

	// later images compare case-insensitively
	p = cleanProduct()
	p.Images[1].Alt = "Presentation Image"
	if issues := issuesByKind(v.Validate(&p), KindImageAltText); len(issues) != 0 {
		t.Errorf("case-insensitive presentation image flagged: %+v", issues)
	}

	p = cleanProduct()
	p.Images[1].Alt = "second photo"
	issues = issuesByKind(v.Validate(&p), KindImageAltText)
	if len(issues) != 1 || issues[0].Details["position"] != 2 {
		t.Fatalf("wrong second alt text: got %+v, want one error at position 2", issues)
	}
}

func TestExpectedAltText(t *testing.T) {
	if got := ExpectedAltText(1, "Salt Fat Acid Heat"); got != "Book Cover: Salt Fat Acid Heat" {
		t.Errorf("ExpectedAltText(1) = %q", got)
	}
	if got := ExpectedAltText(2, "Salt Fat Acid Heat"); got != "presentation image" {
		t.Errorf("ExpectedAltText(2) = %q", got)
	}
}
