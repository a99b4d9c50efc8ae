// Package tui provides an interactive terminal user interface for edgar.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Filings provides company lookup and filing queries.
	Filings driving.FilingService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Filings == nil {
		return ErrMissingFilingService
	}
	return nil
}
