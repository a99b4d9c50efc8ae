// Package memory provides in-memory implementations of the dataset stores.
// The stores are read-only views over data supplied at construction time,
// so concurrent queries are safe without additional locking.
package memory

import (
	"context"
	"strings"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driven"
)

// Ensure CompanyStore implements the interface.
var _ driven.CompanyStore = (*CompanyStore)(nil)

// CompanyStore is an in-memory implementation of driven.CompanyStore.
type CompanyStore struct {
	records map[string]domain.CompanyRecord
}

// NewCompanyStore creates a company store over the given directory.
// Keys are normalised to upper case so lookups are case-insensitive
// regardless of how the source keyed its entries.
func NewCompanyStore(records map[string]domain.CompanyRecord) *CompanyStore {
	normalised := make(map[string]domain.CompanyRecord, len(records))
	for ticker, record := range records {
		key := strings.ToUpper(strings.TrimSpace(ticker))
		record.Ticker = key
		normalised[key] = record
	}
	return &CompanyStore{records: normalised}
}

// GetByTicker retrieves the raw directory entry for a ticker.
func (s *CompanyStore) GetByTicker(_ context.Context, ticker string) (*domain.CompanyRecord, error) {
	record, ok := s.records[strings.ToUpper(ticker)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}
