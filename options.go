package ctlookup

import (
	"net/http"
	"os"
	"time"

	"github.com/gocdisc/ctlookup/library"
	"github.com/gocdisc/ctlookup/table"
)

// KeyKind selects which codelist field the lookup key matches.
type KeyKind = table.KeyKind

// Supported key kinds.
const (
	// KeyID matches the codelist submission value (e.g. "AGEU").
	KeyID = table.KeyID

	// KeyCodelistCode matches the internal concept identifier (e.g. "C66781").
	KeyCodelistCode = table.KeyCodelistCode
)

// Option configures a lookup.
type Option func(*Options)

// Options holds all configuration for a lookup.
type Options struct {
	// Standard is the terminology standard to query.
	Standard Standard

	// Version is the package date (YYYY-MM-DD). Empty means resolve the
	// latest version from the package listing.
	Version string

	// KeyKind selects the codelist field the key is matched against.
	KeyKind KeyKind

	// OutputDir is where the full and filtered CSV tables are written.
	OutputDir string

	// APIKey authenticates against the CDISC Library.
	APIKey string

	// BaseURL overrides the CDISC Library API root.
	BaseURL string

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client

	// Timeout for HTTP requests. Zero keeps the client default.
	Timeout time.Duration

	// Client overrides the library client entirely. When set, APIKey,
	// BaseURL, HTTPClient and Timeout are ignored.
	Client *library.Client
}

// DefaultOptions returns the default lookup configuration.
func DefaultOptions() *Options {
	return &Options{
		Standard:  SDTM,
		KeyKind:   KeyID,
		OutputDir: os.TempDir(),
	}
}

// WithStandard sets the terminology standard (default SDTM).
func WithStandard(s Standard) Option {
	return func(o *Options) {
		o.Standard = s
	}
}

// WithVersion pins the package version, bypassing latest-version resolution.
func WithVersion(version string) Option {
	return func(o *Options) {
		o.Version = version
	}
}

// WithKeyKind sets how the lookup key is matched (default KeyID).
func WithKeyKind(kind KeyKind) Option {
	return func(o *Options) {
		o.KeyKind = kind
	}
}

// WithOutputDir sets where the CSV artifacts are written (default the
// system temp directory). Empty disables artifact output.
func WithOutputDir(dir string) Option {
	return func(o *Options) {
		o.OutputDir = dir
	}
}

// WithAPIKey sets the CDISC Library API key.
func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.APIKey = key
	}
}

// WithBaseURL overrides the CDISC Library API root.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithClient uses a pre-built library client.
func WithClient(client *library.Client) Option {
	return func(o *Options) {
		o.Client = client
	}
}

// buildClient assembles the library client from the options.
func (o *Options) buildClient() *library.Client {
	if o.Client != nil {
		return o.Client
	}
	var opts []library.ClientOption
	if o.BaseURL != "" {
		opts = append(opts, library.WithBaseURL(o.BaseURL))
	}
	if o.APIKey != "" {
		opts = append(opts, library.WithAPIKey(o.APIKey))
	}
	if o.HTTPClient != nil {
		opts = append(opts, library.WithHTTPClient(o.HTTPClient))
	}
	if o.Timeout > 0 {
		opts = append(opts, library.WithTimeout(o.Timeout))
	}
	return library.NewClient(opts...)
}
