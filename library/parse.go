package library

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the package date form used in hrefs and versions.
const dateLayout = "2006-01-02"

// parsePackageHref splits a package link such as
// "/mdr/ct/packages/sdtmct-2023-12-15" into its stem and date. Stems may
// themselves contain hyphens (define-xmlct, qs-ftct), so the date is taken
// from the fixed-width tail of the last path segment.
func parsePackageHref(href string) (stem, date string, ok bool) {
	segment := href
	if i := strings.LastIndex(href, "/"); i >= 0 {
		segment = href[i+1:]
	}

	// {stem}-{YYYY-MM-DD}: at minimum one stem character, a hyphen and a
	// 10-character date.
	if len(segment) < len(dateLayout)+2 {
		return "", "", false
	}

	date = segment[len(segment)-len(dateLayout):]
	if segment[len(segment)-len(dateLayout)-1] != '-' {
		return "", "", false
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", "", false
	}

	stem = segment[:len(segment)-len(dateLayout)-1]
	return stem, date, true
}

// ctBool decodes the CDISC Library's extensible flag, which the service emits
// as the JSON strings "true"/"false" rather than booleans.
type ctBool bool

// UnmarshalJSON accepts both the string form and a plain JSON boolean.
func (b *ctBool) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	switch strings.ToLower(s) {
	case "true":
		*b = true
	case "false", "", "null":
		*b = false
	default:
		return fmt.Errorf("invalid extensible value %q", s)
	}
	return nil
}
