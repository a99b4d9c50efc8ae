package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
	"github.com/custodia-labs/edgar-cli/internal/logger"
)

// fakeCompanyStore serves directory entries from a map keyed by ticker.
type fakeCompanyStore struct {
	records map[string]domain.CompanyRecord
}

func (s *fakeCompanyStore) GetByTicker(_ context.Context, ticker string) (*domain.CompanyRecord, error) {
	record, ok := s.records[ticker]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// fakeFilingStore serves raw filings in insertion order.
type fakeFilingStore struct {
	filings []domain.RawFiling
}

func (s *fakeFilingStore) ListByCIK(_ context.Context, cik string) ([]domain.RawFiling, error) {
	cik = domain.PadCIK(cik)
	var matched []domain.RawFiling
	for _, f := range s.filings {
		if domain.PadCIK(f.CIK) == cik {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

// fakeExporter records export calls and optionally fails on one accession.
type fakeExporter struct {
	failOn   string
	exported []string
}

func (e *fakeExporter) Export(_ context.Context, filing domain.Filing, dir string) (string, error) {
	if filing.AccessionNumber == e.failOn {
		return "", domain.ErrExportFailed
	}
	e.exported = append(e.exported, filing.AccessionNumber)
	if dir == "" {
		dir = "downloads"
	}
	return dir + "/" + filing.AccessionNumber + ".json", nil
}

func testCompanies() *fakeCompanyStore {
	return &fakeCompanyStore{records: map[string]domain.CompanyRecord{
		"AAPL": {Ticker: "AAPL", CIK: "320193", Name: "Apple Inc."},
		"MSFT": {Ticker: "MSFT", CIK: "789019", Name: "Microsoft Corp"},
		"FAKE": {Ticker: "FAKE", Name: "Fake Co"},
	}}
}

func testFilings() *fakeFilingStore {
	return &fakeFilingStore{filings: []domain.RawFiling{
		{CIK: "0000320193", CompanyName: "Apple Inc.", FormType: "10-Q", FilingDate: "2024-01-01", AccessionNumber: "0000320193-24-000001"},
		{CIK: "0000320193", CompanyName: "Apple Inc.", FormType: "10-K", FilingDate: "2024-06-01", AccessionNumber: "0000320193-24-000002"},
		{CIK: "0000320193", CompanyName: "Apple Inc.", FormType: "10-Q", FilingDate: "2023-12-01", AccessionNumber: "0000320193-23-000003"},
	}}
}

func newTestService() *FilingService {
	return NewFilingService(testCompanies(), testFilings(), &fakeExporter{})
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestLookupCompany_Valid(t *testing.T) {
	svc := newTestService()

	company, err := svc.LookupCompany(context.Background(), "aapl")

	require.NoError(t, err)
	assert.Equal(t, "AAPL", company.Ticker)
	assert.Equal(t, "0000320193", company.CIK)
	assert.Equal(t, "Apple Inc.", company.Name)
}

func TestLookupCompany_CIKIsZeroPadded(t *testing.T) {
	svc := newTestService()

	company, err := svc.LookupCompany(context.Background(), "MSFT")

	require.NoError(t, err)
	assert.Len(t, company.CIK, domain.CIKLength)
	assert.Equal(t, "0000789019", company.CIK)
}

func TestLookupCompany_BlankTicker(t *testing.T) {
	svc := newTestService()

	for _, ticker := range []string{"", "   "} {
		_, err := svc.LookupCompany(context.Background(), ticker)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestLookupCompany_UnknownTicker(t *testing.T) {
	svc := newTestService()

	_, err := svc.LookupCompany(context.Background(), "GOOG")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupCompany_MissingCIKField(t *testing.T) {
	svc := newTestService()

	_, err := svc.LookupCompany(context.Background(), "FAKE")

	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestListFilings_NoFiltersSortedAndLimited(t *testing.T) {
	svc := newTestService()

	results, err := svc.ListFilings(context.Background(), "0000320193", domain.DefaultFilingFilter())

	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), domain.DefaultFilingLimit)
	require.Len(t, results, 3)

	// Sorted newest first
	for i := 1; i < len(results); i++ {
		assert.False(t, results[i].FilingDate.After(results[i-1].FilingDate),
			"dates must be non-increasing")
	}
	assert.Equal(t, "2024-06-01", results[0].DateString())
}

func TestListFilings_FormTypeFilter(t *testing.T) {
	svc := newTestService()

	filter := domain.FilingFilter{FormTypes: []string{"10-K"}, Limit: 10}
	results, err := svc.ListFilings(context.Background(), "0000320193", filter)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "10-K", results[0].FormType)
	assert.Equal(t, "2024-06-01", results[0].DateString())
}

func TestListFilings_FormTypeFilterIsCaseInsensitive(t *testing.T) {
	svc := newTestService()

	filter := domain.FilingFilter{FormTypes: []string{"10-k"}, Limit: 10}
	results, err := svc.ListFilings(context.Background(), "0000320193", filter)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "10-K", results[0].FormType)
}

func TestListFilings_DateFrom(t *testing.T) {
	svc := newTestService()

	filter := domain.FilingFilter{DateFrom: date(2024, 1, 1), Limit: 10}
	results, err := svc.ListFilings(context.Background(), "0000320193", filter)

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, f := range results {
		assert.False(t, f.FilingDate.Before(*date(2024, 1, 1)))
	}
}

func TestListFilings_DateTo(t *testing.T) {
	svc := newTestService()

	filter := domain.FilingFilter{DateTo: date(2024, 1, 1), Limit: 10}
	results, err := svc.ListFilings(context.Background(), "0000320193", filter)

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, f := range results {
		assert.False(t, f.FilingDate.After(*date(2024, 1, 1)))
	}
}

func TestListFilings_RangeExcludingAllReturnsEmpty(t *testing.T) {
	svc := newTestService()

	filter := domain.FilingFilter{
		DateFrom: date(2030, 1, 1),
		DateTo:   date(2030, 12, 31),
		Limit:    10,
	}
	results, err := svc.ListFilings(context.Background(), "0000320193", filter)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListFilings_LimitRespected(t *testing.T) {
	svc := newTestService()

	filter := domain.FilingFilter{Limit: 1}
	results, err := svc.ListFilings(context.Background(), "0000320193", filter)

	require.NoError(t, err)
	require.Len(t, results, 1)
	// Most recent record wins
	assert.Equal(t, "2024-06-01", results[0].DateString())
	assert.Equal(t, "0000320193-24-000002", results[0].AccessionNumber)
}

func TestListFilings_MalformedDatesDropped(t *testing.T) {
	store := testFilings()
	store.filings = append(store.filings,
		domain.RawFiling{
			CIK:             "0000320193",
			CompanyName:     "Apple Inc.",
			FormType:        "8-K",
			FilingDate:      "invalid-date",
			AccessionNumber: "0000320193-24-000005",
		},
		domain.RawFiling{
			CIK:             "0000320193",
			CompanyName:     "Apple Inc.",
			FormType:        "8-K",
			AccessionNumber: "0000320193-24-000006",
		},
	)
	svc := NewFilingService(testCompanies(), store, nil)

	results, err := svc.ListFilings(context.Background(), "0000320193", domain.DefaultFilingFilter())

	require.NoError(t, err)
	assert.Len(t, results, 3)
	for _, f := range results {
		assert.NotEqual(t, "0000320193-24-000005", f.AccessionNumber)
		assert.NotEqual(t, "0000320193-24-000006", f.AccessionNumber)
	}
}

func TestListFilings_DroppedRecordsAreLogged(t *testing.T) {
	store := testFilings()
	store.filings = append(store.filings,
		domain.RawFiling{
			CIK:             "0000320193",
			CompanyName:     "Apple Inc.",
			FormType:        "8-K",
			FilingDate:      "invalid-date",
			AccessionNumber: "0000320193-24-000005",
		},
	)
	svc := NewFilingService(testCompanies(), store, nil)

	var buf bytes.Buffer
	logger.SetVerbose(true)
	logger.SetOutput(&buf)
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	_, err := svc.ListFilings(context.Background(), "0000320193", domain.DefaultFilingFilter())

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Dropping record 0000320193-24-000005")
	assert.Contains(t, out, "Dropped 1 malformed records during admission")
}

func TestListFilings_JoinIsLeadingZeroInsensitive(t *testing.T) {
	// Store records carry unpadded CIKs; the query uses the padded form.
	store := &fakeFilingStore{filings: []domain.RawFiling{
		{CIK: "320193", FormType: "10-K", FilingDate: "2024-06-01", AccessionNumber: "a-1"},
	}}
	svc := NewFilingService(testCompanies(), store, nil)

	results, err := svc.ListFilings(context.Background(), "0000320193", domain.DefaultFilingFilter())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "0000320193", results[0].CIK)

	// And the reverse: unpadded query key matches padded stored records.
	results, err = svc.ListFilings(context.Background(), "320193", domain.DefaultFilingFilter())
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestListFilings_StableTieBreakOnEqualDates(t *testing.T) {
	store := &fakeFilingStore{filings: []domain.RawFiling{
		{CIK: "320193", FormType: "10-Q", FilingDate: "2024-06-01", AccessionNumber: "first"},
		{CIK: "320193", FormType: "10-K", FilingDate: "2024-06-01", AccessionNumber: "second"},
		{CIK: "320193", FormType: "8-K", FilingDate: "2024-06-01", AccessionNumber: "third"},
	}}
	svc := NewFilingService(testCompanies(), store, nil)

	results, err := svc.ListFilings(context.Background(), "320193", domain.DefaultFilingFilter())

	require.NoError(t, err)
	require.Len(t, results, 3)
	// Equal dates preserve original record order.
	assert.Equal(t, "first", results[0].AccessionNumber)
	assert.Equal(t, "second", results[1].AccessionNumber)
	assert.Equal(t, "third", results[2].AccessionNumber)
}

func TestListFilings_BlankCIK(t *testing.T) {
	svc := newTestService()

	_, err := svc.ListFilings(context.Background(), "  ", domain.DefaultFilingFilter())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListFilings_InvalidLimit(t *testing.T) {
	svc := newTestService()

	_, err := svc.ListFilings(context.Background(), "0000320193", domain.FilingFilter{Limit: 0})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportFilings_ContinuesPastFailures(t *testing.T) {
	exporter := &fakeExporter{failOn: "0000320193-24-000002"}
	svc := NewFilingService(testCompanies(), testFilings(), exporter)

	filings, err := svc.ListFilings(context.Background(), "0000320193", domain.DefaultFilingFilter())
	require.NoError(t, err)
	require.Len(t, filings, 3)

	results := svc.ExportFilings(context.Background(), filings, "out")

	require.Len(t, results, 3)
	var failed, succeeded int
	for _, r := range results {
		if r.Err != nil {
			failed++
			assert.ErrorIs(t, r.Err, domain.ErrExportFailed)
			assert.Equal(t, "0000320193-24-000002", r.AccessionNumber)
		} else {
			succeeded++
			assert.NotEmpty(t, r.Path)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, succeeded)
	// Both remaining filings were still written.
	assert.Len(t, exporter.exported, 2)
}

func TestExportFiling_NoExporterConfigured(t *testing.T) {
	svc := NewFilingService(testCompanies(), testFilings(), nil)

	_, err := svc.ExportFiling(context.Background(), domain.Filing{AccessionNumber: "a-1"}, "")

	assert.True(t, errors.Is(err, domain.ErrExportFailed))
}
