// Package file persists filing metadata as JSON documents on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driven"
)

// DefaultDir is the directory filings are written to when the caller
// does not supply one.
const DefaultDir = "downloads"

// filingDocument is the on-disk shape of an exported filing. The date is
// written as YYYY-MM-DD text so the file is stable across consumers.
type filingDocument struct {
	CIK             string `json:"cik"`
	CompanyName     string `json:"company_name"`
	FormType        string `json:"form_type"`
	FilingDate      string `json:"filing_date"`
	AccessionNumber string `json:"accession_number"`
}

// Exporter writes one JSON file per filing, named by accession number.
type Exporter struct{}

var _ driven.Exporter = (*Exporter)(nil)

// NewExporter creates a file-based filing exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the filing to dir as <accession>.json and returns the
// written path. An empty dir selects DefaultDir. Exporting the same
// accession number twice overwrites the earlier file.
func (e *Exporter) Export(ctx context.Context, filing domain.Filing, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("exporting filing %s: %w: %w", filing.AccessionNumber, domain.ErrExportFailed, err)
	}

	if filing.AccessionNumber == "" {
		return "", fmt.Errorf("filing has no accession number: %w", domain.ErrInvalidInput)
	}

	if dir == "" {
		dir = DefaultDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory %s: %w: %w", dir, domain.ErrExportFailed, err)
	}

	doc := filingDocument{
		CIK:             filing.CIK,
		CompanyName:     filing.CompanyName,
		FormType:        filing.FormType,
		FilingDate:      filing.DateString(),
		AccessionNumber: filing.AccessionNumber,
	}

	// Marshal fully before touching the file so a failure never leaves
	// a partially written document behind.
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing filing %s: %w: %w", filing.AccessionNumber, domain.ErrExportFailed, err)
	}

	path := filepath.Join(dir, filing.AccessionNumber+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing filing %s: %w: %w", filing.AccessionNumber, domain.ErrExportFailed, err)
	}

	return path, nil
}
