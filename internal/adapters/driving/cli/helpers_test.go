package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/edgar-cli/internal/adapters/driven/config/file"
	exportfile "github.com/custodia-labs/edgar-cli/internal/adapters/driven/export/file"
	"github.com/custodia-labs/edgar-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/edgar-cli/internal/core/domain"
	"github.com/custodia-labs/edgar-cli/internal/core/services"
)

// setupTestService injects a filing service over a small in-memory
// dataset plus a throwaway config store, and returns a cleanup that
// restores the default wiring.
func setupTestService(t *testing.T) func() {
	t.Helper()

	cfg, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	SetConfigStore(cfg)

	companies := map[string]domain.CompanyRecord{
		"AAPL": {Ticker: "AAPL", CIK: "320193", Name: "Apple Inc."},
		"MSFT": {Ticker: "MSFT", CIK: "789019", Name: "Microsoft Corp"},
	}

	filings := []domain.RawFiling{
		{CIK: "320193", CompanyName: "Apple Inc.", FormType: "10-Q",
			FilingDate: "2024-01-01", AccessionNumber: "0000320193-24-000001"},
		{CIK: "320193", CompanyName: "Apple Inc.", FormType: "10-K",
			FilingDate: "2024-06-01", AccessionNumber: "0000320193-24-000002"},
		{CIK: "320193", CompanyName: "Apple Inc.", FormType: "10-Q",
			FilingDate: "2023-12-01", AccessionNumber: "0000320193-23-000003"},
		{CIK: "789019", CompanyName: "Microsoft Corp", FormType: "10-K",
			FilingDate: "2024-07-01", AccessionNumber: "0000789019-24-000001"},
	}

	svc := services.NewFilingService(
		memory.NewCompanyStore(companies),
		memory.NewFilingStore(filings),
		exportfile.NewExporter(),
	)
	SetFilingService(svc)

	return func() {
		SetFilingService(nil)
		SetConfigStore(nil)
	}
}
