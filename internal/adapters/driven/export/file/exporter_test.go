package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

func testFiling() domain.Filing {
	return domain.Filing{
		CIK:             "0000320193",
		CompanyName:     "Apple Inc.",
		FormType:        "10-K",
		FilingDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		AccessionNumber: "0000320193-24-000001",
	}
}

func TestExporter_Export_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter()

	path, err := exporter.Export(context.Background(), testFiling(), dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "0000320193-24-000001.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]string
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "0000320193", doc["cik"])
	assert.Equal(t, "Apple Inc.", doc["company_name"])
	assert.Equal(t, "10-K", doc["form_type"])
	// Date persisted as calendar-date text, not a native timestamp
	assert.Equal(t, "2024-06-01", doc["filing_date"])
	assert.Equal(t, "0000320193-24-000001", doc["accession_number"])
}

func TestExporter_Export_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	exporter := NewExporter()

	path, err := exporter.Export(context.Background(), testFiling(), dir)

	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestExporter_Export_Overwrites(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter()
	filing := testFiling()

	_, err := exporter.Export(context.Background(), filing, dir)
	require.NoError(t, err)

	filing.FormType = "10-Q"
	path, err := exporter.Export(context.Background(), filing, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]string
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "10-Q", doc["form_type"])
}

func TestExporter_Export_MissingAccession(t *testing.T) {
	exporter := NewExporter()
	filing := testFiling()
	filing.AccessionNumber = ""

	_, err := exporter.Export(context.Background(), filing, t.TempDir())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExporter_Export_BadDirectory(t *testing.T) {
	// A regular file in the directory position makes MkdirAll fail.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	exporter := NewExporter()

	_, err := exporter.Export(context.Background(), testFiling(), blocker)

	assert.ErrorIs(t, err, domain.ErrExportFailed)
}

func TestExporter_Export_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exporter := NewExporter()

	_, err := exporter.Export(ctx, testFiling(), t.TempDir())

	assert.ErrorIs(t, err, domain.ErrExportFailed)
}
