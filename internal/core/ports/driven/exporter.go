package driven

import (
	"context"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

// Exporter persists a single filing record to durable storage.
type Exporter interface {
	// Export writes the filing as one flat structured record and returns
	// the path of the written file. An empty dir selects the exporter's
	// default location. Failures wrap domain.ErrExportFailed.
	Export(ctx context.Context, filing domain.Filing, dir string) (string, error)
}
