package domain

import (
	"strconv"
	"strings"
)

// Product is the canonical representation of one catalog record inside this
// service. The Shopify provider maps its GraphQL node shape into this model;
// validation, exclusion and export all work from it. Missing data is
// represented by zero values (empty string, nil slice, nil pointer), never by
// an error.
type Product struct {
	ID          string
	Title       string
	Handle      string // URL slug
	Status      string // "active", "draft", "archived"
	Description string // raw HTML markup

	Images      []Image  // store position order, 1-based externally
	Tags        []string // insertion order preserved
	MinPrice    string   // minimum variant price amount, "" when unresolved
	Collections []string // collection titles
	Metafields  map[string]string // "namespace.key" -> value
	Variants    []Variant
}

type Image struct {
	Src string
	Alt string
}

type Variant struct {
	ID      string
	SKU     string
	Barcode string // intended to be an ISBN-13
	Price   string

	// Taxable is nil when the API omitted the flag entirely, which is a
	// different condition than an explicit false.
	Taxable *bool

	// Location is the fulfillment location serving this variant's inventory,
	// nil when none was resolved.
	Location *Location
}

type Location struct {
	Name                 string
	IsFulfillmentService bool
	FulfillsOnlineOrders bool
	ShipsInventory       bool
	Active               bool
}

// Metafield namespace/keys required on every book product.
const (
	MetafieldNamespace = "custom"

	MetafieldAuthor   = "author"
	MetafieldLanguage = "language"
	MetafieldBinding  = "binding"
	MetafieldPubDate  = "pub_date"
)

// IsActive reports whether the product is published-active. Shopify returns
// the enum uppercase ("ACTIVE"), config files tend to use lowercase.
func (p *Product) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(p.Status), "active")
}

// Metafield returns the value stored under namespace.key, or "" when absent.
func (p *Product) Metafield(namespace, key string) string {
	if p == nil || p.Metafields == nil {
		return ""
	}
	return p.Metafields[namespace+"."+key]
}

// MinPriceAmount parses the minimum variant price. ok is false when the
// product has no resolvable price.
func (p *Product) MinPriceAmount() (float64, bool) {
	s := strings.TrimSpace(p.MinPrice)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstVariant returns the lead variant or nil when the product has none.
func (p *Product) FirstVariant() *Variant {
	if len(p.Variants) == 0 {
		return nil
	}
	return &p.Variants[0]
}
