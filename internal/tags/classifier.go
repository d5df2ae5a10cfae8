package tags

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Classifier interprets free-text product tags. A tag resolves to at most one
// category: publication date, binding code or language code. Anything else is
// unclassified and passes through untouched.
type Classifier struct {
	bindings  map[string]string
	languages map[string]string
}

// NewClassifier returns a classifier loaded with the store's code tables.
func NewClassifier() *Classifier {
	return &Classifier{
		bindings: map[string]string{
			"P": "Paperback",
			"H": "Hardcover",
			"F": "Flexibound",
			"S": "Spiralbound",
		},
		languages: map[string]string{
			"LGEN": "English",
			"LGES": "Spanish",
			"LGFR": "French",
			"LGDE": "German",
			"LGIT": "Italian",
			"LGPT": "Portuguese",
			"LGJP": "Japanese",
			"LGZH": "Chinese",
		},
	}
}

// DateTag is the canonical form of a publication date tag.
type DateTag struct {
	Canonical string // zero-padded MM-DD-YYYY, goes back into the tag list
	ISO       string // YYYY-MM-DD, goes into the pub_date metafield
}

var dateTagPattern = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)

// DateTag parses tags shaped like M-D-YYYY or MM-DD-YYYY. The tag must be a
// real calendar date: "02-30-2024" does not classify. Never errors; a tag
// that fails any step simply is not a date tag.
func (c *Classifier) DateTag(tag string) (DateTag, bool) {
	m := dateTagPattern.FindStringSubmatch(tag)
	if m == nil {
		return DateTag{}, false
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	// time.Date normalizes out-of-range values (Feb 30 becomes Mar 1), so a
	// round-trip comparison is the validity check.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return DateTag{}, false
	}

	return DateTag{
		Canonical: fmt.Sprintf("%02d-%02d-%04d", month, day, year),
		ISO:       fmt.Sprintf("%04d-%02d-%02d", year, month, day),
	}, true
}

// Binding resolves a single-letter binding code to its full name.
func (c *Classifier) Binding(tag string) (string, bool) {
	name, ok := c.bindings[tag]
	return name, ok
}

// Language resolves a prefixed language code (e.g. "LGFR") to its full name.
// A product may carry several language tags; callers accumulate matches in
// tag order.
func (c *Classifier) Language(tag string) (string, bool) {
	name, ok := c.languages[tag]
	return name, ok
}
