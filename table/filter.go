package table

import "strings"

// KeyKind selects which codelist field a filter key is matched against.
type KeyKind string

// Supported key kinds.
const (
	// KeyID matches the codelist submission value (e.g. "AGEU").
	KeyID KeyKind = "ID"

	// KeyCodelistCode matches the internal concept identifier (e.g. "C66781").
	KeyCodelistCode KeyKind = "CODELISTCODE"
)

// IsValid returns true if this is a supported key kind.
func (k KeyKind) IsValid() bool {
	return k == KeyID || k == KeyCodelistCode
}

// Filter selects the merged rows whose codelist field matches key under the
// given kind. Matching is case-insensitive. All matched rows belong to the
// same codelist, so extensible is the flag shared by them; it is "" when no
// row matches.
func Filter(rows []MergedRow, key string, kind KeyKind) (matched []MergedRow, extensible string) {
	for _, row := range rows {
		var field string
		switch kind {
		case KeyCodelistCode:
			field = row.CodelistCode
		default:
			field = row.CodelistID
		}
		if strings.EqualFold(field, key) {
			matched = append(matched, row)
		}
	}
	if len(matched) > 0 {
		extensible = matched[0].ExtensibleFlag
	}
	return matched, extensible
}
