package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

// LookupCompanyInput is the input schema for the lookup_company tool.
type LookupCompanyInput struct {
	Ticker string `json:"ticker" jsonschema:"the ticker symbol to resolve (e.g. AAPL)"`
}

// LookupCompanyOutput is the output schema for the lookup_company tool.
type LookupCompanyOutput struct {
	Ticker string `json:"ticker"`
	CIK    string `json:"cik"`
	Name   string `json:"name"`
}

// ListFilingsInput is the input schema for the list_filings tool.
type ListFilingsInput struct {
	Ticker    string   `json:"ticker" jsonschema:"the ticker symbol of the company"`
	FormTypes []string `json:"form_types,omitempty" jsonschema:"form types to include (e.g. 10-K, 10-Q); empty means all"`
	DateFrom  string   `json:"date_from,omitempty" jsonschema:"inclusive start date in YYYY-MM-DD form"`
	DateTo    string   `json:"date_to,omitempty" jsonschema:"inclusive end date in YYYY-MM-DD form"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// ListFilingsOutput is the output schema for the list_filings tool.
type ListFilingsOutput struct {
	Company LookupCompanyOutput `json:"company"`
	Filings []FilingOutput      `json:"filings"`
	Count   int                 `json:"count"`
}

// FilingOutput represents a single filing result.
type FilingOutput struct {
	CIK             string `json:"cik"`
	CompanyName     string `json:"company_name"`
	FormType        string `json:"form_type"`
	FilingDate      string `json:"filing_date"`
	AccessionNumber string `json:"accession_number"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_company",
		Description: "Resolve a ticker symbol to a company identity with its zero-padded CIK",
	}, s.handleLookupCompany)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_filings",
		Description: "List a company's filings filtered by form type and date range, most recent first",
	}, s.handleListFilings)
}

// handleLookupCompany handles the lookup_company tool invocation.
func (s *Server) handleLookupCompany(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupCompanyInput,
) (*mcp.CallToolResult, LookupCompanyOutput, error) {
	company, err := s.ports.Filings.LookupCompany(ctx, input.Ticker)
	if err != nil {
		return nil, LookupCompanyOutput{}, err
	}

	return nil, LookupCompanyOutput{
		Ticker: company.Ticker,
		CIK:    company.CIK,
		Name:   company.Name,
	}, nil
}

// handleListFilings handles the list_filings tool invocation.
// The ticker is resolved first so callers never deal with raw CIKs.
func (s *Server) handleListFilings(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListFilingsInput,
) (*mcp.CallToolResult, ListFilingsOutput, error) {
	company, err := s.ports.Filings.LookupCompany(ctx, input.Ticker)
	if err != nil {
		return nil, ListFilingsOutput{}, err
	}

	filter := domain.DefaultFilingFilter()
	filter.FormTypes = input.FormTypes
	if input.Limit > 0 {
		filter.Limit = input.Limit
	}

	filter.DateFrom, err = parseToolDate(input.DateFrom)
	if err != nil {
		return nil, ListFilingsOutput{}, err
	}
	filter.DateTo, err = parseToolDate(input.DateTo)
	if err != nil {
		return nil, ListFilingsOutput{}, err
	}

	filings, err := s.ports.Filings.ListFilings(ctx, company.CIK, filter)
	if err != nil {
		return nil, ListFilingsOutput{}, err
	}

	output := ListFilingsOutput{
		Company: LookupCompanyOutput{
			Ticker: company.Ticker,
			CIK:    company.CIK,
			Name:   company.Name,
		},
		Filings: make([]FilingOutput, len(filings)),
		Count:   len(filings),
	}

	for i := range filings {
		output.Filings[i] = FilingOutput{
			CIK:             filings[i].CIK,
			CompanyName:     filings[i].CompanyName,
			FormType:        filings[i].FormType,
			FilingDate:      filings[i].DateString(),
			AccessionNumber: filings[i].AccessionNumber,
		}
	}

	return nil, output, nil
}

// parseToolDate parses an optional YYYY-MM-DD tool argument.
func parseToolDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", value, domain.ErrInvalidInput)
	}
	return &t, nil
}
