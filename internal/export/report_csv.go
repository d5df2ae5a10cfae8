package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"catalog-audit/internal/validation"
)

// ReportEntry is one flagged product with its issues, ready for the
// human-readable issue report.
type ReportEntry struct {
	ProductID string
	Title     string
	Issues    []validation.Issue
}

var reportHeader = []string{
	"Product Title",
	"Product ID",
	"Issue Type",
	"Issue Description",
	"Details",
}

// WriteReportCSV writes one row per (product, issue) pair. Details serialize
// as JSON, which keeps map keys in sorted order so repeated runs produce
// byte-identical output.
func WriteReportCSV(w io.Writer, entries []ReportEntry) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(reportHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		for _, issue := range entry.Issues {
			details := ""
			if len(issue.Details) > 0 {
				raw, err := json.Marshal(issue.Details)
				if err == nil {
					details = string(raw)
				}
			}
			record := []string{
				entry.Title,
				entry.ProductID,
				string(issue.Severity),
				issue.Message,
				details,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
