package ctlookup

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocdisc/ctlookup/library"
	"github.com/gocdisc/ctlookup/report"
	"github.com/gocdisc/ctlookup/table"
)

// Lookup retrieves the controlled terminology codelist identified by
// codelistValue and returns its term values.
//
// The pipeline is strictly sequential: validate inputs, resolve the latest
// package version for the standard (skipped when WithVersion was given),
// fetch the package, join codelists to terms, filter by the key, and write
// the CSV artifacts. At most two HTTP requests are issued per call and no
// state is held between calls.
//
// A key that matches nothing is not an error; the returned Result reports it
// through NotFound. Every failure is one of *ValidationError,
// *ResolutionError or *FetchError, except artifact write failures, which are
// returned wrapped.
func Lookup(ctx context.Context, codelistValue string, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	key := strings.TrimSpace(codelistValue)
	if key == "" {
		return nil, &ValidationError{msg: "codelist value is required"}
	}
	if !o.Standard.IsValid() {
		return nil, &ValidationError{
			msg: fmt.Sprintf("invalid standard %q: must be one of %s", o.Standard, ValidStandards()),
		}
	}
	if !o.KeyKind.IsValid() {
		return nil, &ValidationError{
			msg: fmt.Sprintf("invalid codelist type %q: must be %s or %s", o.KeyKind, KeyID, KeyCodelistCode),
		}
	}

	client := o.buildClient()
	stem := o.Standard.PackageStem()

	version := o.Version
	if version == "" {
		v, err := client.ResolveLatest(ctx, stem)
		if err != nil {
			if errors.Is(err, library.ErrNoVersions) {
				return nil, &ResolutionError{Standard: o.Standard}
			}
			return nil, &FetchError{Standard: o.Standard, Version: "latest", Err: err}
		}
		defaultMetrics.RecordResolve()
		version = v
	}

	start := time.Now()
	pkg, err := client.GetPackage(ctx, stem, version)
	if err != nil {
		return nil, &FetchError{Standard: o.Standard, Version: version, Err: err}
	}
	defaultMetrics.RecordFetch(time.Since(start))

	merged := table.Build(pkg.Codelists, pkg.Terms)
	matched, extensible := table.Filter(merged, key, o.KeyKind)

	result := &Result{
		Standard:   o.Standard,
		Version:    version,
		Key:        key,
		KeyKind:    o.KeyKind,
		Rows:       matched,
		Extensible: extensible,
		TotalRows:  len(merged),
	}

	if o.OutputDir != "" {
		fullPath := filepath.Join(o.OutputDir, fmt.Sprintf("%s-%s-full.csv", stem, version))
		filteredPath := filepath.Join(o.OutputDir, fmt.Sprintf("%s-%s-filtered.csv", stem, version))
		if err := report.WriteCSV(fullPath, merged); err != nil {
			return nil, fmt.Errorf("failed to write full table: %w", err)
		}
		if err := report.WriteCSV(filteredPath, matched); err != nil {
			return nil, fmt.Errorf("failed to write filtered table: %w", err)
		}
		result.FullTablePath = fullPath
		result.FilteredTablePath = filteredPath
	}

	defaultMetrics.RecordLookup(result.NotFound())
	return result, nil
}
