package ctlookup

import (
	"fmt"
	"strings"
)

// Standard represents a CDISC data-model family with its own controlled
// terminology package.
type Standard string

// Supported terminology standards.
const (
	SDTM      Standard = "SDTM"
	ADAM      Standard = "ADAM"
	CDASH     Standard = "CDASH"
	DefineXML Standard = "DEFINE-XML"
	SEND      Standard = "SEND"
	DDF       Standard = "DDF"
	Glossary  Standard = "GLOSSARY"
	MRCT      Standard = "MRCT"
	Protocol  Standard = "PROTOCOL"
	QRS       Standard = "QRS"
	QSFT      Standard = "QS-FT"
	TMF       Standard = "TMF"
)

// standards lists every supported standard in display order.
var standards = []Standard{
	SDTM, ADAM, CDASH, DefineXML, SEND, DDF,
	Glossary, MRCT, Protocol, QRS, QSFT, TMF,
}

// String returns the standard name.
func (s Standard) String() string {
	return string(s)
}

// IsValid returns true if this is a supported standard.
func (s Standard) IsValid() bool {
	for _, known := range standards {
		if s == known {
			return true
		}
	}
	return false
}

// PackageStem returns the lowercase identifier the CDISC Library uses for this
// standard's terminology packages, e.g. "sdtmct" for SDTM. Package paths take
// the form /mdr/ct/packages/{stem}-{version}.
func (s Standard) PackageStem() string {
	return strings.ToLower(string(s)) + "ct"
}

// ParseStandard parses a standard name case-insensitively.
func ParseStandard(name string) (Standard, error) {
	s := Standard(strings.ToUpper(strings.TrimSpace(name)))
	if !s.IsValid() {
		return "", &ValidationError{
			msg: fmt.Sprintf("invalid standard %q: must be one of %s", name, ValidStandards()),
		}
	}
	return s, nil
}

// ValidStandards returns the supported standard names as a comma-separated
// string, for use in diagnostics.
func ValidStandards() string {
	names := make([]string, len(standards))
	for i, s := range standards {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
