package mcp

import (
	"context"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driving"
)

// mockFilingService is a mock implementation of driving.FilingService.
type mockFilingService struct {
	company    *domain.Company
	filings    []domain.Filing
	lastFilter domain.FilingFilter
	err        error
}

var _ driving.FilingService = (*mockFilingService)(nil)

func (m *mockFilingService) LookupCompany(_ context.Context, _ string) (*domain.Company, error) {
	return m.company, m.err
}

func (m *mockFilingService) ListFilings(
	_ context.Context, _ string, filter domain.FilingFilter,
) ([]domain.Filing, error) {
	m.lastFilter = filter
	return m.filings, m.err
}

func (m *mockFilingService) ExportFiling(_ context.Context, _ domain.Filing, _ string) (string, error) {
	return "", m.err
}

func (m *mockFilingService) ExportFilings(
	_ context.Context, filings []domain.Filing, _ string,
) []domain.ExportResult {
	results := make([]domain.ExportResult, 0, len(filings))
	for _, f := range filings {
		results = append(results, domain.ExportResult{AccessionNumber: f.AccessionNumber, Err: m.err})
	}
	return results
}
