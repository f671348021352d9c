package ctlookup

import (
	"io"

	"github.com/gocdisc/ctlookup/report"
	"github.com/gocdisc/ctlookup/table"
)

// Result contains the outcome of a codelist lookup.
type Result struct {
	// Standard, Version, Key and KeyKind echo the resolved request, for
	// report headers.
	Standard Standard
	Version  string
	Key      string
	KeyKind  KeyKind

	// Rows are the merged rows matching the key, ordered by
	// (codelist ID, term submission value).
	Rows []table.MergedRow

	// Extensible is "Yes" or "No" for the matched codelist, "" when nothing
	// matched.
	Extensible string

	// TotalRows is the size of the full merged table the filter ran over.
	TotalRows int

	// FullTablePath and FilteredTablePath locate the CSV artifacts, when
	// artifact output was enabled.
	FullTablePath     string
	FilteredTablePath string
}

// NotFound reports whether the lookup completed successfully but matched no
// rows. This is a normal outcome, not a fault.
func (r *Result) NotFound() bool {
	return len(r.Rows) == 0
}

// Values returns the matched term submission values in report order.
func (r *Result) Values() []string {
	values := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		values[i] = row.TermSubmissionValue
	}
	return values
}

// Render writes the user-facing report for this result to w.
func (r *Result) Render(w io.Writer) {
	report.Render(w, report.Header{
		Standard:   r.Standard.String(),
		Version:    r.Version,
		Key:        r.Key,
		KeyKind:    string(r.KeyKind),
		Extensible: r.Extensible,
	}, r.Rows)
}
