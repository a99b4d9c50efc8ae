package driven

import (
	"context"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

// FilingStore provides read access to stored filing records.
// Backed by the in-memory dataset or by SQLite.
type FilingStore interface {
	// ListByCIK returns all raw filings owned by the given CIK, in the
	// dataset's original record order. Both sides of the comparison are
	// padded to ten digits, so the match is insensitive to whether the
	// source stored identifiers with or without leading zeros.
	ListByCIK(ctx context.Context, cik string) ([]domain.RawFiling, error)
}
