// Package library provides a client for the CDISC Library API.
//
// The CDISC Library (https://library.cdisc.org) hosts dated controlled
// terminology packages for each CDISC standard. This client lists the
// available packages, resolves the latest version for a standard, and fetches
// a package's codelists and terms.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/buger/jsonparser"
	log "github.com/sirupsen/logrus"

	"github.com/gocdisc/ctlookup/table"
)

const (
	// DefaultBaseURL is the CDISC Library API root.
	DefaultBaseURL = "https://library.cdisc.org/api"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// packagesPath is the terminology package listing endpoint.
	packagesPath = "/mdr/ct/packages"

	// apiKeyHeader carries the CDISC Library API key.
	apiKeyHeader = "api-key"
)

// ErrNoVersions is returned by ResolveLatest when the listing contains no
// package for the requested stem.
var ErrNoVersions = errors.New("no package versions found")

// Client is a CDISC Library API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API key sent on every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new CDISC Library client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get issues one GET request and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	log.WithFields(log.Fields{"url": url}).Debug("GET")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("authentication failed (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("not found (status %d)", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// PackageVersion describes one dated terminology package in the listing.
type PackageVersion struct {
	// Stem is the package identifier without the date, e.g. "sdtmct".
	Stem string

	// Date is the package date in YYYY-MM-DD form.
	Date string

	// Href is the package link as listed by the service.
	Href string
}

// ListPackages fetches the package listing and parses each link into a
// PackageVersion. Links whose path does not end in a recognizable
// {stem}-{YYYY-MM-DD} segment are skipped.
func (c *Client) ListPackages(ctx context.Context) ([]PackageVersion, error) {
	body, err := c.get(ctx, c.baseURL+packagesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	var versions []PackageVersion
	_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		href, err := jsonparser.GetString(value, "href")
		if err != nil {
			return
		}
		stem, date, ok := parsePackageHref(href)
		if !ok {
			log.WithFields(log.Fields{"href": href}).Debug("skipping unrecognized package link")
			return
		}
		versions = append(versions, PackageVersion{Stem: stem, Date: date, Href: href})
	}, "_links", "packages")
	if err != nil {
		return nil, fmt.Errorf("failed to parse package listing: %w", err)
	}

	return versions, nil
}

// ResolveLatest returns the most recent package date for a stem, comparing
// the YYYY-MM-DD date of every listed package whose stem matches. It returns
// ErrNoVersions when the listing has no package for the stem.
func (c *Client) ResolveLatest(ctx context.Context, stem string) (string, error) {
	versions, err := c.ListPackages(ctx)
	if err != nil {
		return "", err
	}

	latest := ""
	for _, v := range versions {
		if v.Stem != stem {
			continue
		}
		// Dates are zero-padded YYYY-MM-DD, so lexicographic order is
		// chronological order.
		if v.Date > latest {
			latest = v.Date
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w for %s", ErrNoVersions, stem)
	}

	log.WithFields(log.Fields{"stem": stem, "version": latest}).Debug("resolved latest version")
	return latest, nil
}

// Package holds the two relations extracted from one terminology package.
type Package struct {
	Stem    string
	Version string

	Codelists []table.Codelist
	Terms     []table.Term
}

// rawPackage mirrors the CDISC Library package JSON, keeping only the fields
// needed downstream. Terms are nested inside their owning codelist, which is
// the stable link the join key is derived from.
type rawPackage struct {
	Version   string `json:"version"`
	Codelists []struct {
		ConceptID       string `json:"conceptId"`
		SubmissionValue string `json:"submissionValue"`
		Name            string `json:"name"`
		Extensible      ctBool `json:"extensible"`
		Terms           []struct {
			ConceptID       string `json:"conceptId"`
			SubmissionValue string `json:"submissionValue"`
			PreferredTerm   string `json:"preferredTerm"`
		} `json:"terms"`
	} `json:"codelists"`
}

// GetPackage fetches the terminology package {stem}-{version} and flattens it
// into codelist and term relations. The link key of each term is the concept
// ID of its owning codelist.
func (c *Client) GetPackage(ctx context.Context, stem, version string) (*Package, error) {
	url := fmt.Sprintf("%s%s/%s-%s", c.baseURL, packagesPath, stem, version)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var raw rawPackage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode package %s-%s: %w", stem, version, err)
	}

	pkg := &Package{
		Stem:    stem,
		Version: version,
	}
	for _, cl := range raw.Codelists {
		pkg.Codelists = append(pkg.Codelists, table.Codelist{
			Code:       cl.ConceptID,
			ID:         cl.SubmissionValue,
			Name:       cl.Name,
			Extensible: bool(cl.Extensible),
			LinkKey:    cl.ConceptID,
		})
		for _, t := range cl.Terms {
			pkg.Terms = append(pkg.Terms, table.Term{
				LinkKey:         cl.ConceptID,
				Code:            t.ConceptID,
				SubmissionValue: t.SubmissionValue,
				DecodedValue:    t.PreferredTerm,
			})
		}
	}

	log.WithFields(log.Fields{
		"stem":      stem,
		"version":   version,
		"codelists": len(pkg.Codelists),
		"terms":     len(pkg.Terms),
	}).Debug("fetched package")

	return pkg, nil
}
