// Package cli implements the edgar command line interface using cobra.
// Commands resolve their services lazily so tests can inject fakes.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/edgar-cli/internal/adapters/driven/config/file"
	exportfile "github.com/custodia-labs/edgar-cli/internal/adapters/driven/export/file"
	"github.com/custodia-labs/edgar-cli/internal/adapters/driven/fixtures"
	"github.com/custodia-labs/edgar-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/edgar-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/edgar-cli/internal/core/services"
	"github.com/custodia-labs/edgar-cli/internal/logger"
)

// Default dataset locations when neither the config file nor the import
// command has pointed the CLI at anything else.
const (
	defaultCompaniesPath = "fixtures/company_tickers.json"
	defaultFilingsPath   = "fixtures/filing_sample.json"
)

// version is set by the main package at build time.
var version = "dev"

// verbose enables debug logging on stderr.
var verbose bool

var (
	// filingService is the injected service; nil means build the default
	// wiring on first use.
	filingService driving.FilingService

	// configStore is the injected config; nil means open the default
	// TOML store on first use.
	configStore driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "edgar",
	Short: "Look up SEC filings by ticker symbol",
	Long: `edgar resolves ticker symbols to company identities and queries a
local dataset of SEC filing records by form type, date range, and count.

Datasets are read from JSON fixture files by default; use "edgar import"
to load them into a local SQLite database instead.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging on stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetFilingService injects the filing service. Passing nil resets to the
// default wiring.
func SetFilingService(s driving.FilingService) {
	filingService = s
}

// SetConfigStore injects the config store. Passing nil resets to the
// default TOML store.
func SetConfigStore(s driven.ConfigStore) {
	configStore = s
}

// ensureConfig returns the injected config store, opening the default
// TOML store on first use.
func ensureConfig() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg
	return cfg, nil
}

// ensureFilingService returns the injected service, building the default
// wiring on first use.
func ensureFilingService() (driving.FilingService, error) {
	if filingService != nil {
		return filingService, nil
	}

	svc, err := buildDefaultService()
	if err != nil {
		return nil, err
	}
	filingService = svc
	return svc, nil
}

// buildDefaultService wires the stores the config file points at.
// A configured database directory selects the SQLite backend; otherwise
// the fixture files are loaded into in-memory stores.
func buildDefaultService() (driving.FilingService, error) {
	cfg, err := ensureConfig()
	if err != nil {
		return nil, err
	}

	exporter := exportfile.NewExporter()

	if dir := cfg.GetString("data.database"); dir != "" {
		logger.Debug("Using SQLite backend at %s", dir)

		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		// The store lives for the process; the OS releases it on exit.
		return services.NewFilingService(store.CompanyStore(), store.FilingStore(), exporter), nil
	}

	companiesPath := cfg.GetString("data.companies")
	if companiesPath == "" {
		companiesPath = defaultCompaniesPath
	}
	filingsPath := cfg.GetString("data.filings")
	if filingsPath == "" {
		filingsPath = defaultFilingsPath
	}

	logger.Debug("Loading datasets: %s, %s", companiesPath, filingsPath)

	companies, err := fixtures.LoadCompanies(companiesPath)
	if err != nil {
		return nil, err
	}
	filings, err := fixtures.LoadFilings(filingsPath)
	if err != nil {
		return nil, err
	}

	return services.NewFilingService(
		memory.NewCompanyStore(companies),
		memory.NewFilingStore(filings),
		exporter,
	), nil
}
