package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultFilingLimit is the number of filings returned when no limit is set.
const DefaultFilingLimit = 10

// FilingFilter configures a filing query. All predicates are optional;
// a zero predicate means "no restriction".
type FilingFilter struct {
	// FormTypes restricts results to these form types, matched
	// case-insensitively. Empty means no restriction.
	FormTypes []string

	// DateFrom keeps only filings dated on or after it.
	DateFrom *time.Time

	// DateTo keeps only filings dated on or before it.
	DateTo *time.Time

	// Limit is the maximum number of results. Must be strictly positive.
	Limit int
}

// DefaultFilingFilter returns a filter with no restrictions and the
// default result limit.
func DefaultFilingFilter() FilingFilter {
	return FilingFilter{Limit: DefaultFilingLimit}
}

// Validate checks the filter invariants.
func (f FilingFilter) Validate() error {
	if f.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d: %w", f.Limit, ErrInvalidInput)
	}
	return nil
}

// FormSet returns the case-folded form-type allow-set, or nil when the
// filter places no restriction on form types.
func (f FilingFilter) FormSet() map[string]struct{} {
	if len(f.FormTypes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(f.FormTypes))
	for _, form := range f.FormTypes {
		set[strings.ToUpper(form)] = struct{}{}
	}
	return set
}
