package memory

import (
	"context"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driven"
)

// Ensure FilingStore implements the interface.
var _ driven.FilingStore = (*FilingStore)(nil)

// FilingStore is an in-memory implementation of driven.FilingStore.
// Records keep the order they were supplied in; that order is the
// documented tie-break for filings sharing a date.
type FilingStore struct {
	filings []domain.RawFiling
}

// NewFilingStore creates a filing store over the given records.
func NewFilingStore(filings []domain.RawFiling) *FilingStore {
	return &FilingStore{filings: filings}
}

// ListByCIK returns all raw filings owned by the given CIK.
// Both the query key and stored keys are padded before comparison.
func (s *FilingStore) ListByCIK(_ context.Context, cik string) ([]domain.RawFiling, error) {
	cik = domain.PadCIK(cik)

	var matched []domain.RawFiling
	for _, f := range s.filings {
		if domain.PadCIK(f.CIK) == cik {
			matched = append(matched, f)
		}
	}
	return matched, nil
}
