// Package report orchestrates one audit pass: exclusion, validation and
// correction-row mapping over a full catalog snapshot.
package report

import (
	"catalog-audit/internal/domain"
	"catalog-audit/internal/exclusion"
	"catalog-audit/internal/export"
	"catalog-audit/internal/validation"
)

// Assembler runs the pipeline sequentially, record by record. Each record is
// independent, so the aggregate result does not depend on input order beyond
// the ordering of the output slices.
type Assembler struct {
	filter    *exclusion.Filter
	validator *validation.Validator
	mapper    *export.Mapper
}

func NewAssembler(filter *exclusion.Filter, validator *validation.Validator, mapper *export.Mapper) *Assembler {
	return &Assembler{filter: filter, validator: validator, mapper: mapper}
}

// Excluded is one record the filter took out of scope.
type Excluded struct {
	ProductID string
	Title     string
	Reason    string
}

// Flagged is one validated record that produced at least one issue.
type Flagged struct {
	Product domain.Product
	Issues  []validation.Issue
}

// Result is the outcome of one full audit run.
type Result struct {
	Total     int // records seen
	Validated int // active records that went through the rule battery
	Excluded  []Excluded
	Flagged   []Flagged
	Rows      []export.Row // correction-import rows for every flagged record
}

// Run audits the snapshot. Excluded records contribute only to the excluded
// list; they never appear in issues or correction rows.
func (a *Assembler) Run(products []domain.Product) Result {
	var result Result
	result.Total = len(products)

	for i := range products {
		p := &products[i]

		if excluded, reason := a.filter.ShouldExclude(p); excluded {
			result.Excluded = append(result.Excluded, Excluded{
				ProductID: p.ID,
				Title:     p.Title,
				Reason:    reason,
			})
			continue
		}

		if p.IsActive() {
			result.Validated++
		}

		issues := a.validator.Validate(p)
		if len(issues) == 0 {
			continue
		}

		result.Flagged = append(result.Flagged, Flagged{Product: *p, Issues: issues})
		result.Rows = append(result.Rows, a.mapper.BuildRows(p, issues)...)
	}

	return result
}

// ReportEntries converts the flagged set into issue-report rows.
func (r Result) ReportEntries() []export.ReportEntry {
	entries := make([]export.ReportEntry, 0, len(r.Flagged))
	for _, f := range r.Flagged {
		entries = append(entries, export.ReportEntry{
			ProductID: f.Product.ID,
			Title:     f.Product.Title,
			Issues:    f.Issues,
		})
	}
	return entries
}
