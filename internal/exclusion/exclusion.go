package exclusion

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"catalog-audit/internal/domain"
)

// MatchKind selects how a title pattern is applied.
type MatchKind string

const (
	MatchStartsWith MatchKind = "starts_with"
	MatchContains   MatchKind = "contains"
)

// TitlePattern is one case-insensitive title rule, evaluated in declared
// order.
type TitlePattern struct {
	Pattern string    `yaml:"pattern"`
	Kind    MatchKind `yaml:"match"`
}

// Rules is the externally supplied exclusion configuration. Loaded once per
// run and immutable afterwards.
type Rules struct {
	ExactTitles   []string       `yaml:"exact_titles"`
	TitlePatterns []TitlePattern `yaml:"title_patterns"`
	Barcodes      []string       `yaml:"barcodes"`
	URLs          []string       `yaml:"urls"`

	// URLBase is joined with a product's handle to form its canonical URL
	// before checking the URL set.
	URLBase string `yaml:"url_base"`
}

// DefaultRules mirrors the production exclusion lists: event listings, gift
// cards and out-of-print stock are never audited.
func DefaultRules() Rules {
	return Rules{
		ExactTitles: []string{
			"Kitchen Arts & Letters Gift Card",
		},
		TitlePatterns: []TitlePattern{
			{Pattern: "Class:", Kind: MatchStartsWith},
			{Pattern: "Gift Card", Kind: MatchContains},
			{Pattern: "Limited Edition", Kind: MatchContains},
			{Pattern: "Clean Out", Kind: MatchContains},
			{Pattern: "OP:", Kind: MatchStartsWith},
			{Pattern: "Talk & Taste", Kind: MatchStartsWith},
			{Pattern: "Le Journal du Patissier", Kind: MatchStartsWith},
			{Pattern: "Cookbook Club", Kind: MatchContains},
		},
		URLBase: "https://kitchenartsandletters.com/products/",
	}
}

// LoadRules reads a YAML rule file. Fields left empty in the file fall back
// to the defaults, so a file can add barcodes without restating the title
// patterns.
func LoadRules(path string) (Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("exclusion: read rules: %w", err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("exclusion: parse rules %s: %w", path, err)
	}
	return rules, nil
}

// Filter decides whether a product is out of audit scope. Stages run in
// fixed order and the first match wins:
//
//  1. exact title (case-sensitive)
//  2. title patterns, declared order, case-insensitive
//  3. variant barcode
//  4. canonical product URL
type Filter struct {
	exactTitles map[string]struct{}
	patterns    []compiledPattern
	barcodes    map[string]struct{}
	urls        map[string]struct{}
	urlBase     string
}

type compiledPattern struct {
	raw     string // reported verbatim as the exclusion reason
	folded  string
	prefix  bool
}

func NewFilter(rules Rules) *Filter {
	f := &Filter{
		exactTitles: make(map[string]struct{}, len(rules.ExactTitles)),
		barcodes:    make(map[string]struct{}, len(rules.Barcodes)),
		urls:        make(map[string]struct{}, len(rules.URLs)),
		urlBase:     rules.URLBase,
	}
	for _, t := range rules.ExactTitles {
		f.exactTitles[t] = struct{}{}
	}
	for _, p := range rules.TitlePatterns {
		switch p.Kind {
		case MatchStartsWith, MatchContains:
		default:
			continue // skip unknown pattern kinds
		}
		f.patterns = append(f.patterns, compiledPattern{
			raw:    p.Pattern,
			folded: strings.ToLower(p.Pattern),
			prefix: p.Kind == MatchStartsWith,
		})
	}
	for _, b := range rules.Barcodes {
		f.barcodes[b] = struct{}{}
	}
	for _, u := range rules.URLs {
		f.urls[u] = struct{}{}
	}
	return f
}

// ShouldExclude reports whether the product is out of scope and, when it is,
// which rule matched. A nil product or one without a title is never excluded.
func (f *Filter) ShouldExclude(p *domain.Product) (bool, string) {
	if p == nil {
		return false, ""
	}
	title := p.Title
	if title == "" {
		return false, ""
	}

	if _, ok := f.exactTitles[title]; ok {
		return true, fmt.Sprintf("Exact title match: %s", title)
	}

	folded := strings.ToLower(title)
	for _, pat := range f.patterns {
		if pat.matches(folded) {
			return true, fmt.Sprintf("Partial title match: %s", pat.raw)
		}
	}

	for _, variant := range p.Variants {
		if variant.Barcode == "" {
			continue
		}
		if _, ok := f.barcodes[variant.Barcode]; ok {
			return true, fmt.Sprintf("Barcode match: %s", variant.Barcode)
		}
	}

	if p.Handle != "" && len(f.urls) > 0 {
		url := f.urlBase + p.Handle
		if _, ok := f.urls[url]; ok {
			return true, fmt.Sprintf("URL match: %s", url)
		}
	}

	return false, ""
}

func (c compiledPattern) matches(foldedTitle string) bool {
	if c.prefix {
		return strings.HasPrefix(foldedTitle, c.folded)
	}
	return strings.Contains(foldedTitle, c.folded)
}
