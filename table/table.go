// Package table builds and filters the merged codelist/term table.
//
// A fetched terminology package is flattened into two relations: one Codelist
// row per controlled-vocabulary list and one Term row per permissible value.
// Build performs an inner join of the two on the link key (the owning
// codelist's concept ID) and pins a deterministic ordering so downstream
// reports are stable.
package table

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Codelist is one controlled-vocabulary list within a terminology package.
type Codelist struct {
	// Code is the internal NCI concept identifier, e.g. "C66781".
	Code string

	// ID is the human submission value, e.g. "AGEU".
	ID string

	// Name is the display name of the codelist.
	Name string

	// Extensible indicates whether submitters may add values beyond the
	// official term set.
	Extensible bool

	// LinkKey joins this codelist to its terms.
	LinkKey string
}

// Term is one permissible value within a codelist.
type Term struct {
	// LinkKey references the owning codelist.
	LinkKey string

	// Code is the term's NCI concept identifier.
	Code string

	// SubmissionValue is the value submitted in datasets, e.g. "YEARS".
	SubmissionValue string

	// DecodedValue is the term's preferred (decoded) description.
	DecodedValue string
}

// MergedRow is the join of a codelist and one of its terms. One row per term,
// carrying all codelist attributes.
type MergedRow struct {
	CodelistCode        string
	CodelistID          string
	CodelistName        string
	Extensible          bool
	ExtensibleFlag      string // "Yes" or "No"
	TermCode            string
	TermSubmissionValue string
	TermDecodedValue    string
}

// ExtensibleFlag maps the extensible boolean to its report form.
func ExtensibleFlag(extensible bool) string {
	if extensible {
		return "Yes"
	}
	return "No"
}

// Build inner-joins codelists and terms on the link key. A codelist with zero
// terms contributes zero rows; a term whose link key matches no codelist is
// dropped. Duplicate terms propagate as duplicate rows.
//
// Rows are ordered by (codelist ID, term submission value) ascending,
// lexicographic, case-sensitive.
func Build(codelists []Codelist, terms []Term) []MergedRow {
	byKey := make(map[string]Codelist, len(codelists))
	for _, cl := range codelists {
		byKey[cl.LinkKey] = cl
	}

	rows := make([]MergedRow, 0, len(terms))
	for _, t := range terms {
		cl, ok := byKey[t.LinkKey]
		if !ok {
			continue
		}
		rows = append(rows, MergedRow{
			CodelistCode:        cl.Code,
			CodelistID:          cl.ID,
			CodelistName:        cl.Name,
			Extensible:          cl.Extensible,
			ExtensibleFlag:      ExtensibleFlag(cl.Extensible),
			TermCode:            t.Code,
			TermSubmissionValue: t.SubmissionValue,
			TermDecodedValue:    t.DecodedValue,
		})
	}

	slices.SortFunc(rows, func(a, b MergedRow) int {
		if c := strings.Compare(a.CodelistID, b.CodelistID); c != 0 {
			return c
		}
		return strings.Compare(a.TermSubmissionValue, b.TermSubmissionValue)
	})

	return rows
}
