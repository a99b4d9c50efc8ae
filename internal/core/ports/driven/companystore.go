package driven

import (
	"context"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

// CompanyStore provides read access to the ticker directory.
// Backed by the in-memory dataset or by SQLite.
type CompanyStore interface {
	// GetByTicker retrieves the raw directory entry for a ticker.
	// The ticker is expected in upper-cased form.
	// Returns domain.ErrNotFound when the ticker is absent.
	GetByTicker(ctx context.Context, ticker string) (*domain.CompanyRecord, error)
}
