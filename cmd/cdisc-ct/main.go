// Package main implements the cdisc-ct CLI tool for looking up controlled
// terminology codelists in the CDISC Library.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/gocdisc/ctlookup"
)

const (
	version = "0.1.0"
	usage   = `cdisc-ct - CDISC Controlled Terminology codelist lookup

Usage:
  cdisc-ct [options] <codelist-value>

Examples:
  cdisc-ct AGEU
  cdisc-ct -standard SDTM -version 2023-12-15 AGEU
  cdisc-ct -type CODELISTCODE C66781
  cdisc-ct -standard ADAM -output /tmp/ct PARAMCD

The API key is read from -api-key or the CDISC_API_KEY environment variable
(a .env file in the working directory is loaded automatically).

Options:
`
)

// Config holds CLI configuration.
type Config struct {
	Value       string
	Type        string
	Standard    string
	Version     string
	OutputDir   string
	APIKey      string
	BaseURL     string
	LogLevel    string
	Verbose     bool
	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("cdisc-ct v%s\n", version)
		os.Exit(0)
	}

	lvl, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if config.Value == "" {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(config))
}

func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.Type, "type", "ID", "Codelist key type: ID, CODELISTCODE")
	flag.StringVar(&config.Standard, "standard", "SDTM", "Terminology standard ("+ctlookup.ValidStandards()+")")
	flag.StringVar(&config.Version, "version", "", "Package version YYYY-MM-DD (default: latest)")
	flag.StringVar(&config.OutputDir, "output", "", "Directory for CSV artifacts (default: system temp dir)")
	flag.StringVar(&config.APIKey, "api-key", os.Getenv("CDISC_API_KEY"), "CDISC Library API key")
	flag.StringVar(&config.BaseURL, "base-url", os.Getenv("CDISC_BASE_URL"), "CDISC Library API base URL")
	flag.StringVar(&config.LogLevel, "logLevel", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&config.Verbose, "verbose", false, "Print artifact paths and metrics")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	config.Value = strings.TrimSpace(flag.Arg(0))
	return config
}

func run(config *Config) int {
	standard, err := ctlookup.ParseStandard(config.Standard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	kind := ctlookup.KeyKind(strings.ToUpper(config.Type))

	opts := []ctlookup.Option{
		ctlookup.WithStandard(standard),
		ctlookup.WithKeyKind(kind),
		ctlookup.WithAPIKey(config.APIKey),
	}
	if config.Version != "" {
		opts = append(opts, ctlookup.WithVersion(config.Version))
	}
	if config.OutputDir != "" {
		opts = append(opts, ctlookup.WithOutputDir(config.OutputDir))
	}
	if config.BaseURL != "" {
		opts = append(opts, ctlookup.WithBaseURL(config.BaseURL))
	}

	result, err := ctlookup.Lookup(context.Background(), config.Value, opts...)
	if err != nil {
		var vErr *ctlookup.ValidationError
		var rErr *ctlookup.ResolutionError
		var fErr *ctlookup.FetchError
		switch {
		case errors.As(err, &vErr):
			fmt.Fprintf(os.Stderr, "Error: %v\n", vErr)
			return 2
		case errors.As(err, &rErr):
			fmt.Fprintf(os.Stderr, "Error: %v\n", rErr)
		case errors.As(err, &fErr):
			fmt.Fprintf(os.Stderr, "Error: %v\n", fErr)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	result.Render(os.Stdout)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Full table:     %s\n", result.FullTablePath)
		fmt.Fprintf(os.Stderr, "Filtered table: %s\n", result.FilteredTablePath)
		snap := ctlookup.DefaultMetrics().Snapshot()
		fmt.Fprintf(os.Stderr, "Fetch time:     %s\n", snap.FetchTimeAvg)
	}

	return 0
}
