package tui

import "errors"

// ErrMissingFilingService is returned when the filing service is not provided.
var ErrMissingFilingService = errors.New("tui: filing service is required")
