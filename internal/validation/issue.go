package validation

// Severity of one validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind is the machine-readable identity of an issue. Downstream mapping
// switches on this tag, never on the human-readable message text.
type Kind string

const (
	KindNoImages           Kind = "no_images"
	KindFewImages          Kind = "few_images"
	KindMissingDescription Kind = "missing_description"
	KindShortDescription   Kind = "short_description"
	KindMissingPrice       Kind = "missing_price"
	KindLowPrice           Kind = "low_price"
	KindNoCollections      Kind = "no_collections"
	KindNoTags             Kind = "missing_tags"
	KindFewTags            Kind = "few_tags"
	KindMissingMetafield   Kind = "missing_metafield"
	KindNoVariants         Kind = "no_variants"
	KindMissingBarcode     Kind = "missing_barcode"
	KindMissingSKU         Kind = "missing_sku"
	KindTaxableUnset       Kind = "taxable_status"
	KindFulfillmentService Kind = "fulfillment_service"
	KindNoOnlineOrders     Kind = "no_online_orders"
	KindNoShipping         Kind = "no_shipping"
	KindImageAltText       Kind = "image_alt_text"
)

// Issue is one defect found on one product. Details carry machine keys
// ("field", "variant_id", "expected", "current", ...) for report output and
// correction-row mapping.
type Issue struct {
	Kind     Kind
	Severity Severity
	Message  string
	Details  map[string]any
}

func errorIssue(kind Kind, message string, details map[string]any) Issue {
	return Issue{Kind: kind, Severity: SeverityError, Message: message, Details: details}
}

func warningIssue(kind Kind, message string, details map[string]any) Issue {
	return Issue{Kind: kind, Severity: SeverityWarning, Message: message, Details: details}
}
