// Package report renders lookup results for users and materializes the merged
// and filtered tables as CSV artifacts.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocdisc/ctlookup/table"
)

// Header carries the echo fields printed above a rendered result.
type Header struct {
	Standard   string
	Version    string
	Key        string
	KeyKind    string
	Extensible string // "Yes"/"No", "" when nothing matched
}

// Render writes a user-facing report: one term submission value per matched
// row under a descriptive header, or a not-found notice when rows is empty.
func Render(w io.Writer, h Header, rows []table.MergedRow) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "Value %s (%s) not found in %s controlled terminology version %s\n",
			h.Key, h.KeyKind, h.Standard, h.Version)
		return
	}

	fmt.Fprintf(w, "Codelist %s (%s), %s controlled terminology version %s, Extensible: %s\n",
		h.Key, h.KeyKind, h.Standard, h.Version, h.Extensible)
	for _, row := range rows {
		fmt.Fprintf(w, "  %s\n", row.TermSubmissionValue)
	}
}

// csvHeader is the column order of the CSV artifacts.
var csvHeader = []string{
	"codelist_code",
	"codelist_id",
	"codelist_name",
	"extensible",
	"term_code",
	"term_submission_value",
	"term_decoded_value",
}

// WriteCSV materializes rows as a CSV file at path, one record per merged row.
func WriteCSV(path string, rows []table.MergedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range rows {
		record := []string{
			row.CodelistCode,
			row.CodelistID,
			row.CodelistName,
			row.ExtensibleFlag,
			row.TermCode,
			row.TermSubmissionValue,
			row.TermDecodedValue,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
