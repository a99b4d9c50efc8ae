// Package fixtures loads the company directory and filing index from
// JSON dataset files on disk.
package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

// flexString unmarshals a JSON value that may be a string or a number.
// Directory files in the wild store the CIK either way.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = flexString(num.String())
	return nil
}

// companyEntry is one directory entry as stored on disk. "name" wins over
// "title" when both are present.
type companyEntry struct {
	CIK   flexString `json:"cik"`
	Name  string     `json:"name"`
	Title string     `json:"title"`
}

// filingEntry is one filing record as stored on disk. The date stays a
// raw string here; admission and parsing happen in the core.
type filingEntry struct {
	CIK             flexString `json:"cik"`
	CompanyName     string     `json:"company_name"`
	FormType        string     `json:"form_type"`
	FilingDate      string     `json:"filing_date"`
	AccessionNumber string     `json:"accession_number"`
}

// LoadCompanies reads a ticker directory file and returns its entries
// keyed by ticker symbol, exactly as stored.
func LoadCompanies(path string) (map[string]domain.CompanyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading company directory %s: %w", path, err)
	}

	var entries map[string]companyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing company directory %s: %w", path, err)
	}

	records := make(map[string]domain.CompanyRecord, len(entries))
	for ticker, entry := range entries {
		name := entry.Name
		if name == "" {
			name = entry.Title
		}
		records[ticker] = domain.CompanyRecord{
			Ticker: ticker,
			CIK:    string(entry.CIK),
			Name:   name,
		}
	}

	return records, nil
}

// LoadFilings reads a filing index file and returns its records in file
// order.
func LoadFilings(path string) ([]domain.RawFiling, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filing index %s: %w", path, err)
	}

	var entries []filingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing filing index %s: %w", path, err)
	}

	filings := make([]domain.RawFiling, 0, len(entries))
	for _, entry := range entries {
		filings = append(filings, domain.RawFiling{
			CIK:             string(entry.CIK),
			CompanyName:     entry.CompanyName,
			FormType:        entry.FormType,
			FilingDate:      entry.FilingDate,
			AccessionNumber: entry.AccessionNumber,
		})
	}

	return filings, nil
}
