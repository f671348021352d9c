package ctlookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"sync/atomic"
	"testing"
)

const listingFixture = `{
  "_links": {
    "packages": [
      {"href": "/mdr/ct/packages/sdtmct-2022-01-01", "title": "SDTM CT 2022-01-01", "type": "Terminology"},
      {"href": "/mdr/ct/packages/sdtmct-2023-12-01", "title": "SDTM CT 2023-12-01", "type": "Terminology"},
      {"href": "/mdr/ct/packages/sdtmct-2021-12-31", "title": "SDTM CT 2021-12-31", "type": "Terminology"},
      {"href": "/mdr/ct/packages/adamct-2023-09-29", "title": "ADaM CT 2023-09-29", "type": "Terminology"}
    ],
    "self": {"href": "/mdr/ct/packages"}
  }
}`

const packageFixture = `{
  "name": "SDTM CT 2023-12-01",
  "version": "2023-12-01",
  "codelists": [
    {
      "conceptId": "C66781",
      "submissionValue": "AGEU",
      "name": "Age Unit",
      "extensible": "false",
      "terms": [
        {"conceptId": "C29848", "submissionValue": "YEARS", "preferredTerm": "Year"},
        {"conceptId": "C29844", "submissionValue": "WEEKS", "preferredTerm": "Week"}
      ]
    },
    {
      "conceptId": "C71620",
      "submissionValue": "UNIT",
      "name": "Unit",
      "extensible": "true",
      "terms": [
        {"conceptId": "C28253", "submissionValue": "mg", "preferredTerm": "Milligram"}
      ]
    }
  ]
}`

// testServer serves the fixtures and counts hits on the listing endpoint.
func testServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var listingHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mdr/ct/packages":
			listingHits.Add(1)
			w.Write([]byte(listingFixture))
		case "/mdr/ct/packages/sdtmct-2023-12-01":
			w.Write([]byte(packageFixture))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &listingHits
}

func TestLookupEndToEnd(t *testing.T) {
	srv, listingHits := testServer(t)
	outDir := t.TempDir()

	result, err := Lookup(context.Background(), "AGEU",
		WithStandard(SDTM),
		WithVersion("2023-12-01"),
		WithBaseURL(srv.URL),
		WithOutputDir(outDir),
	)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if result.NotFound() {
		t.Fatal("Expected a match for AGEU")
	}
	if got := result.Values(); !reflect.DeepEqual(got, []string{"WEEKS", "YEARS"}) {
		t.Errorf("Values = %v, want [WEEKS YEARS]", got)
	}
	if result.Extensible != "No" {
		t.Errorf("Extensible = %q, want No", result.Extensible)
	}
	if result.Standard != SDTM || result.Version != "2023-12-01" || result.Key != "AGEU" {
		t.Errorf("Unexpected echo fields: %+v", result)
	}
	if result.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3", result.TotalRows)
	}

	// An explicit version bypasses the resolver entirely.
	if n := listingHits.Load(); n != 0 {
		t.Errorf("Expected no listing requests, got %d", n)
	}

	// Both CSV artifacts exist.
	for _, path := range []string{result.FullTablePath, result.FilteredTablePath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Missing artifact %s: %v", path, err)
		}
	}
}

func TestLookupResolvesLatest(t *testing.T) {
	srv, listingHits := testServer(t)

	result, err := Lookup(context.Background(), "ageu",
		WithStandard(SDTM),
		WithBaseURL(srv.URL),
		WithOutputDir(""),
	)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if result.Version != "2023-12-01" {
		t.Errorf("Resolved version = %s, want 2023-12-01", result.Version)
	}
	if n := listingHits.Load(); n != 1 {
		t.Errorf("Expected 1 listing request, got %d", n)
	}
	// Key matching is case-insensitive.
	if len(result.Rows) != 2 {
		t.Errorf("Expected 2 rows for ageu, got %d", len(result.Rows))
	}
}

func TestLookupByCodelistCode(t *testing.T) {
	srv, _ := testServer(t)

	result, err := Lookup(context.Background(), "C66781",
		WithStandard(SDTM),
		WithVersion("2023-12-01"),
		WithKeyKind(KeyCodelistCode),
		WithBaseURL(srv.URL),
		WithOutputDir(""),
	)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(result.Rows))
	}
	for _, row := range result.Rows {
		if row.CodelistCode != "C66781" {
			t.Errorf("Row has codelist code %q", row.CodelistCode)
		}
	}
}

func TestLookupNotFoundOutcome(t *testing.T) {
	srv, _ := testServer(t)

	result, err := Lookup(context.Background(), "NOTREAL",
		WithStandard(SDTM),
		WithVersion("2023-12-01"),
		WithBaseURL(srv.URL),
		WithOutputDir(""),
	)
	if err != nil {
		t.Fatalf("Not-found must not be an error, got: %v", err)
	}
	if !result.NotFound() {
		t.Error("Expected a not-found outcome")
	}
	if len(result.Rows) != 0 || result.Extensible != "" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestLookupInvalidStandard(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := Lookup(context.Background(), "AGEU",
		WithStandard(Standard("FOO")),
		WithBaseURL(srv.URL),
	)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	// Validation happens before any network call.
	if n := hits.Load(); n != 0 {
		t.Errorf("Expected no requests, got %d", n)
	}
}

func TestLookupMissingValue(t *testing.T) {
	_, err := Lookup(context.Background(), "  ")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
}

func TestLookupInvalidKeyKind(t *testing.T) {
	_, err := Lookup(context.Background(), "AGEU", WithKeyKind(KeyKind("BOGUS")))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
}

func TestLookupResolutionError(t *testing.T) {
	srv, _ := testServer(t)

	// SEND has no packages in the listing fixture.
	_, err := Lookup(context.Background(), "AGEU",
		WithStandard(SEND),
		WithBaseURL(srv.URL),
	)

	var rErr *ResolutionError
	if !errors.As(err, &rErr) {
		t.Fatalf("Expected *ResolutionError, got %v", err)
	}
	if rErr.Standard != SEND {
		t.Errorf("ResolutionError names %s, want SEND", rErr.Standard)
	}
}

func TestLookupFetchError(t *testing.T) {
	srv, _ := testServer(t)

	_, err := Lookup(context.Background(), "AGEU",
		WithStandard(SDTM),
		WithVersion("1999-01-01"),
		WithBaseURL(srv.URL),
	)

	var fErr *FetchError
	if !errors.As(err, &fErr) {
		t.Fatalf("Expected *FetchError, got %v", err)
	}
	if fErr.Standard != SDTM || fErr.Version != "1999-01-01" {
		t.Errorf("FetchError missing context: %+v", fErr)
	}
}
