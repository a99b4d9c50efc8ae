package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date text form used by the dataset and by
// exported files. It must stay stable across language boundaries.
const DateLayout = "2006-01-02"

// RawFiling is a filing record exactly as the dataset stores it.
// The owner CIK may be unpadded and the filing date is untrusted text;
// promotion to a Filing happens via NewFiling during a query.
type RawFiling struct {
	// CIK identifies the owning company, possibly without leading zeros.
	CIK string

	// CompanyName is the owner's display name.
	CompanyName string

	// FormType classifies the filing (e.g. "10-K", "10-Q").
	FormType string

	// FilingDate is the date text as stored; may be empty or unparsable.
	FilingDate string

	// AccessionNumber uniquely identifies the filing.
	AccessionNumber string
}

// Filing is a validated filing record. Its FilingDate is always a valid
// calendar date and its CIK is always padded to ten digits.
type Filing struct {
	// CIK is the owning company identifier, zero-padded to ten digits.
	CIK string

	// CompanyName is the owner's display name.
	CompanyName string

	// FormType classifies the filing.
	FormType string

	// FilingDate is the filing's calendar date.
	FilingDate time.Time

	// AccessionNumber uniquely identifies the filing.
	AccessionNumber string
}

// NewFiling promotes a raw record to a Filing.
// It fails when the date field is empty or does not parse as YYYY-MM-DD;
// callers running tolerant ingestion drop such records rather than store
// them with a placeholder date.
func NewFiling(raw RawFiling) (*Filing, error) {
	if raw.FilingDate == "" {
		return nil, fmt.Errorf("filing %s has no filing date: %w", raw.AccessionNumber, ErrInvalidRecord)
	}

	date, err := time.Parse(DateLayout, raw.FilingDate)
	if err != nil {
		return nil, fmt.Errorf("filing %s has unparsable date %q: %w", raw.AccessionNumber, raw.FilingDate, ErrInvalidRecord)
	}

	return &Filing{
		CIK:             PadCIK(raw.CIK),
		CompanyName:     raw.CompanyName,
		FormType:        raw.FormType,
		FilingDate:      date,
		AccessionNumber: raw.AccessionNumber,
	}, nil
}

// DateString renders the filing date in its canonical YYYY-MM-DD text form.
func (f *Filing) DateString() string {
	return f.FilingDate.Format(DateLayout)
}

// ExportResult reports the outcome of persisting one filing in a batch.
type ExportResult struct {
	// AccessionNumber identifies the filing the result belongs to.
	AccessionNumber string

	// Path is the written file path on success.
	Path string

	// Err is the failure for this filing, nil on success.
	Err error
}
