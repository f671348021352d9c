// Package ctlookup retrieves CDISC Controlled Terminology codelists from the
// CDISC Library API and produces a filtered table of term submission values.
//
// The pipeline is deliberately linear: resolve the latest package version for a
// standard (unless one is supplied), fetch that package, join codelists to their
// terms, filter by the requested codelist identifier, and report.
//
// # Quick Start
//
//	import (
//	    "github.com/gocdisc/ctlookup"
//	)
//
//	result, err := ctlookup.Lookup(ctx, "AGEU",
//	    ctlookup.WithStandard(ctlookup.SDTM),
//	    ctlookup.WithAPIKey(os.Getenv("CDISC_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.NotFound() {
//	    fmt.Println("no such codelist")
//	}
//	for _, row := range result.Rows {
//	    fmt.Println(row.TermSubmissionValue)
//	}
//
// # Functional Options
//
//	result, err := ctlookup.Lookup(ctx, "C66781",
//	    ctlookup.WithKeyKind(ctlookup.KeyCodelistCode),
//	    ctlookup.WithStandard(ctlookup.SDTM),
//	    ctlookup.WithVersion("2023-12-15"),
//	    ctlookup.WithOutputDir("/tmp/ct"),
//	)
//
// # Error Handling
//
// Failures are typed: *ValidationError (bad input, raised before any network
// call), *ResolutionError (no package version found for a standard) and
// *FetchError (network, authentication or missing-package failures, carrying
// the standard and version). A filter that matches zero rows is NOT an error;
// it is reported through Result.NotFound.
package ctlookup
