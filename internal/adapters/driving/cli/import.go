package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/edgar-cli/internal/adapters/driven/fixtures"
	"github.com/custodia-labs/edgar-cli/internal/adapters/driven/storage/sqlite"
)

var (
	importCompaniesPath string
	importFilingsPath   string
	importDataDir       string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import dataset files into the local database",
	Long: `Loads a ticker directory and/or a filing index from JSON files into
the local SQLite database, replacing any previously imported data. Later
commands then query the database instead of re-reading fixture files.

Examples:
  edgar import --companies fixtures/company_tickers.json --filings fixtures/filing_sample.json
  edgar import --filings updated_filings.json`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importCompaniesPath, "companies", "", "ticker directory JSON file")
	importCmd.Flags().StringVar(&importFilingsPath, "filings", "", "filing index JSON file")
	importCmd.Flags().StringVar(&importDataDir, "db", "", "database directory (default ~/.edgar/data)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	if importCompaniesPath == "" && importFilingsPath == "" {
		return errors.New("nothing to import: provide --companies and/or --filings")
	}

	store, err := sqlite.NewStore(importDataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	if importCompaniesPath != "" {
		companies, err := fixtures.LoadCompanies(importCompaniesPath)
		if err != nil {
			return err
		}
		count, err := store.ImportCompanies(ctx, companies)
		if err != nil {
			return err
		}
		cmd.Printf("Imported %d companies\n", count)
	}

	if importFilingsPath != "" {
		filings, err := fixtures.LoadFilings(importFilingsPath)
		if err != nil {
			return err
		}
		count, err := store.ImportFilings(ctx, filings)
		if err != nil {
			return err
		}
		cmd.Printf("Imported %d filings\n", count)
	}

	// Point later runs at the database.
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.Set("data.database", filepath.Dir(store.Path())); err != nil {
		return err
	}

	cmd.Printf("Database: %s\n", store.Path())
	return nil
}
