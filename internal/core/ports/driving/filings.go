package driving

import (
	"context"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

// FilingService exposes company lookup, filing queries, and filing export
// to external actors.
type FilingService interface {
	// LookupCompany resolves a ticker symbol to a company identity.
	// The lookup is case-insensitive and the returned CIK is padded to
	// ten digits.
	LookupCompany(ctx context.Context, ticker string) (*domain.Company, error)

	// ListFilings returns the filings owned by cik that satisfy the
	// filter, sorted by filing date descending and truncated to the
	// filter's limit. An empty result is valid, not an error.
	ListFilings(ctx context.Context, cik string, filter domain.FilingFilter) ([]domain.Filing, error)

	// ExportFiling persists one filing and returns the written file path.
	ExportFiling(ctx context.Context, filing domain.Filing, dir string) (string, error)

	// ExportFilings persists a batch of filings. It continues past
	// per-item failures and reports every outcome.
	ExportFilings(ctx context.Context, filings []domain.Filing, dir string) []domain.ExportResult
}
