package ctlookup

import "fmt"

// ValidationError reports invalid caller input: a missing codelist value or an
// unsupported standard name. It is raised before any network call is made.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// ResolutionError reports that no package version could be found for a
// standard in the CDISC Library listing.
type ResolutionError struct {
	Standard Standard
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no versions found for standard %s", e.Standard)
}

// FetchError reports a failed package fetch: network failure, authentication
// failure, or an unknown standard+version combination.
type FetchError struct {
	Standard Standard
	Version  string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch package %s-%s: %v", e.Standard.PackageStem(), e.Version, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}
