package domain

import (
	"fmt"
	"strings"
)

// CIKLength is the canonical width of a CIK: ten ASCII digits.
const CIKLength = 10

// CompanyRecord is a raw ticker directory entry as supplied by the dataset.
// The CIK may be missing, unpadded, or otherwise unusable; CompanyRecord is
// never handed to callers directly, it is promoted to a Company via NewCompany.
type CompanyRecord struct {
	// Ticker is the symbol the entry is keyed by.
	Ticker string

	// CIK is the company identifier as stored, possibly unpadded or empty.
	CIK string

	// Name is the display name, possibly empty.
	Name string
}

// Company represents a resolved company identity.
type Company struct {
	// Ticker is the upper-cased ticker symbol.
	Ticker string

	// CIK is the Central Index Key, zero-padded to exactly ten digits.
	CIK string

	// Name is the human-readable company name.
	Name string
}

// NewCompany builds a Company from a directory entry.
// The ticker must be non-empty after trimming and is upper-cased. The CIK
// must be a nonnegative decimal integer after trimming; it is zero-padded
// to ten digits. An empty name falls back to the upper-cased ticker.
func NewCompany(ticker, cik, name string) (*Company, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker must be a non-empty string: %w", ErrInvalidInput)
	}

	cik = strings.TrimSpace(cik)
	if cik == "" {
		return nil, fmt.Errorf("company data for %s missing CIK: %w", ticker, ErrInvalidRecord)
	}
	if !isDigits(cik) {
		return nil, fmt.Errorf("CIK %q for %s must be numeric: %w", cik, ticker, ErrInvalidRecord)
	}

	if name == "" {
		name = ticker
	}

	return &Company{
		Ticker: ticker,
		CIK:    PadCIK(cik),
		Name:   name,
	}, nil
}

// PadCIK normalises a CIK to its canonical ten-digit form by left-padding
// with zeros. Identifiers already at or beyond ten digits are returned
// trimmed but otherwise unchanged.
func PadCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	if len(cik) >= CIKLength {
		return cik
	}
	return strings.Repeat("0", CIKLength-len(cik)) + cik
}

// isDigits reports whether s consists solely of ASCII digits.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
