package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/edgar-cli/internal/logger"
)

// Ensure FilingService implements the interface.
var _ driving.FilingService = (*FilingService)(nil)

// FilingService resolves tickers against the company directory and runs
// filtered queries over the filing index.
type FilingService struct {
	companies driven.CompanyStore
	filings   driven.FilingStore
	exporter  driven.Exporter
}

// NewFilingService creates a new filing service.
// The exporter is optional (can be nil) when export is not needed.
func NewFilingService(
	companies driven.CompanyStore,
	filings driven.FilingStore,
	exporter driven.Exporter,
) *FilingService {
	return &FilingService{
		companies: companies,
		filings:   filings,
		exporter:  exporter,
	}
}

// LookupCompany resolves a ticker symbol to a company identity.
func (s *FilingService) LookupCompany(ctx context.Context, ticker string) (*domain.Company, error) {
	logger.Section("Company Lookup")

	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("ticker must be a non-empty string: %w", domain.ErrInvalidInput)
	}

	ticker = strings.ToUpper(ticker)
	logger.Debug("Ticker: %q", ticker)

	record, err := s.companies.GetByTicker(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("company with ticker %q: %w", ticker, err)
	}

	company, err := domain.NewCompany(ticker, record.CIK, record.Name)
	if err != nil {
		return nil, err
	}

	logger.Info("Resolved %s to %s (CIK %s)", ticker, company.Name, company.CIK)
	return company, nil
}

// ListFilings returns the filings owned by cik that satisfy the filter.
// Records with an absent or unparsable date are dropped silently; the
// dropped count is reported through the verbose logger so the tolerant
// admission policy stays observable.
func (s *FilingService) ListFilings(
	ctx context.Context, cik string, filter domain.FilingFilter,
) ([]domain.Filing, error) {
	logger.Section("Filing Query")

	cik = strings.TrimSpace(cik)
	if cik == "" {
		return nil, fmt.Errorf("CIK must be a non-empty string: %w", domain.ErrInvalidInput)
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	cik = domain.PadCIK(cik)
	logger.Debug("CIK: %s, limit: %d", cik, filter.Limit)

	raws, err := s.filings.ListByCIK(ctx, cik)
	if err != nil {
		return nil, fmt.Errorf("listing filings for %s: %w", cik, err)
	}
	logger.Debug("Stored records for owner: %d", len(raws))

	filings := s.admitRecords(raws)
	filings = s.applyFormFilter(filings, filter.FormSet())
	filings = s.applyDateBounds(filings, filter.DateFrom, filter.DateTo)

	// Stable sort: filings sharing a date keep their original record order.
	sort.SliceStable(filings, func(i, j int) bool {
		return filings[i].FilingDate.After(filings[j].FilingDate)
	})

	if len(filings) > filter.Limit {
		filings = filings[:filter.Limit]
	}

	logger.Info("Final results: %d", len(filings))
	return filings, nil
}

// admitRecords promotes raw records to validated filings, dropping any
// record whose date field is missing or unparsable.
func (s *FilingService) admitRecords(raws []domain.RawFiling) []domain.Filing {
	filings := make([]domain.Filing, 0, len(raws))
	dropped := 0

	for _, raw := range raws {
		filing, err := domain.NewFiling(raw)
		if err != nil {
			dropped++
			logger.Warn("Dropping record %s: %v", raw.AccessionNumber, err)
			continue
		}
		filings = append(filings, *filing)
	}

	if dropped > 0 {
		logger.Debug("Dropped %d malformed records during admission", dropped)
	}
	return filings
}

// applyFormFilter keeps only filings whose form type is in the allow-set.
// A nil set means no restriction.
func (s *FilingService) applyFormFilter(filings []domain.Filing, forms map[string]struct{}) []domain.Filing {
	if forms == nil {
		return filings
	}

	filtered := make([]domain.Filing, 0, len(filings))
	for _, f := range filings {
		if _, ok := forms[strings.ToUpper(f.FormType)]; ok {
			filtered = append(filtered, f)
		}
	}

	logger.Debug("After form filter: %d filings", len(filtered))
	return filtered
}

// applyDateBounds keeps only filings inside the inclusive date range.
// Either bound may be nil.
func (s *FilingService) applyDateBounds(filings []domain.Filing, from, to *time.Time) []domain.Filing {
	if from == nil && to == nil {
		return filings
	}

	filtered := make([]domain.Filing, 0, len(filings))
	for _, f := range filings {
		if from != nil && f.FilingDate.Before(*from) {
			continue
		}
		if to != nil && f.FilingDate.After(*to) {
			continue
		}
		filtered = append(filtered, f)
	}

	logger.Debug("After date bounds: %d filings", len(filtered))
	return filtered
}

// ExportFiling persists one filing and returns the written file path.
func (s *FilingService) ExportFiling(ctx context.Context, filing domain.Filing, dir string) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("exporter not configured: %w", domain.ErrExportFailed)
	}
	return s.exporter.Export(ctx, filing, dir)
}

// ExportFilings persists a batch of filings. A failing item is recorded
// and the batch continues; callers inspect the results for failures.
func (s *FilingService) ExportFilings(
	ctx context.Context, filings []domain.Filing, dir string,
) []domain.ExportResult {
	logger.Section("Filing Export")

	results := make([]domain.ExportResult, 0, len(filings))
	for _, filing := range filings {
		path, err := s.ExportFiling(ctx, filing, dir)
		if err != nil {
			logger.Warn("Export of %s failed: %v", filing.AccessionNumber, err)
		}
		results = append(results, domain.ExportResult{
			AccessionNumber: filing.AccessionNumber,
			Path:            path,
			Err:             err,
		})
	}

	return results
}
