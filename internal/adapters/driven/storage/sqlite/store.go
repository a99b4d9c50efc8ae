// Package sqlite provides a SQLite-backed implementation of the dataset
// stores, for datasets imported once and queried across runs.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/edgar-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/edgar-cli/internal/core/domain"
	"github.com/custodia-labs/edgar-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// company and filing store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.edgar/data/filings.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".edgar", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "filings.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CompanyStore returns a CompanyStore interface backed by this store.
func (s *Store) CompanyStore() driven.CompanyStore {
	return &companyStore{store: s}
}

// FilingStore returns a FilingStore interface backed by this store.
func (s *Store) FilingStore() driven.FilingStore {
	return &filingStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ImportCompanies replaces the company directory with the given entries.
// Tickers are upper-cased and CIKs padded so later lookups match the
// normalisation the core applies to query keys.
func (s *Store) ImportCompanies(ctx context.Context, records map[string]domain.CompanyRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM companies"); err != nil {
		return 0, fmt.Errorf("clearing companies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO companies (ticker, cik, name)
		VALUES (?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			cik = excluded.cik,
			name = excluded.name
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	count := 0
	for ticker, record := range records {
		key := strings.ToUpper(strings.TrimSpace(ticker))
		if key == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, key, strings.TrimSpace(record.CIK), record.Name); err != nil {
			return 0, fmt.Errorf("saving company %s: %w", key, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// ImportFilings replaces the filing index with the given records.
// CIKs are padded at import time; insertion order is preserved via the
// rowid so equal-date filings keep the dataset's original order.
func (s *Store) ImportFilings(ctx context.Context, filings []domain.RawFiling) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM filings"); err != nil {
		return 0, fmt.Errorf("clearing filings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO filings (cik, company_name, form_type, filing_date, accession_number)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range filings {
		if _, err := stmt.ExecContext(ctx, domain.PadCIK(f.CIK), f.CompanyName,
			f.FormType, f.FilingDate, f.AccessionNumber); err != nil {
			return 0, fmt.Errorf("saving filing %s: %w", f.AccessionNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(filings), nil
}

// ==================== Company Store ====================

// companyStore implements driven.CompanyStore.
type companyStore struct {
	store *Store
}

var _ driven.CompanyStore = (*companyStore)(nil)

// GetByTicker retrieves the raw directory entry for a ticker.
func (s *companyStore) GetByTicker(ctx context.Context, ticker string) (*domain.CompanyRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT ticker, cik, name FROM companies WHERE ticker = ?
	`, strings.ToUpper(ticker))

	var record domain.CompanyRecord
	if err := row.Scan(&record.Ticker, &record.CIK, &record.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning company: %w", err)
	}

	return &record, nil
}

// ==================== Filing Store ====================

// filingStore implements driven.FilingStore.
type filingStore struct {
	store *Store
}

var _ driven.FilingStore = (*filingStore)(nil)

// ListByCIK returns all raw filings owned by the given CIK in insertion order.
func (s *filingStore) ListByCIK(ctx context.Context, cik string) ([]domain.RawFiling, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT cik, company_name, form_type, filing_date, accession_number
		FROM filings WHERE cik = ?
		ORDER BY id
	`, domain.PadCIK(cik))
	if err != nil {
		return nil, fmt.Errorf("querying filings: %w", err)
	}
	defer rows.Close()

	var filings []domain.RawFiling //nolint:prealloc // size unknown from query
	for rows.Next() {
		var f domain.RawFiling
		if err := rows.Scan(&f.CIK, &f.CompanyName, &f.FormType, &f.FilingDate, &f.AccessionNumber); err != nil {
			return nil, fmt.Errorf("scanning filing: %w", err)
		}
		filings = append(filings, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating filings: %w", err)
	}

	return filings, nil
}
