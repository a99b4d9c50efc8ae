package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/edgar-cli/internal/core/domain"
)

var (
	filingsForms    []string
	filingsLimit    int
	filingsFrom     string
	filingsTo       string
	filingsDownload bool
	filingsOut      string
	filingsJSON     bool
)

var filingsCmd = &cobra.Command{
	Use:   "filings [ticker]",
	Short: "List filings for a ticker symbol",
	Long: `Resolves the ticker to a company and lists its filing records,
most recent first. Results can be narrowed by form type and an inclusive
date range, and saved to disk as one JSON file per filing.

Examples:
  edgar filings AAPL
  edgar filings aapl --form 10-K --limit 5
  edgar filings AAPL --from 2024-01-01 --to 2024-12-31
  edgar filings AAPL --form 10-K --download --out exports`,
	Args: cobra.ExactArgs(1),
	RunE: runFilings,
}

func init() {
	filingsCmd.Flags().StringSliceVar(&filingsForms, "form", nil, "filter by form types (e.g. 10-K,10-Q)")
	filingsCmd.Flags().IntVarP(&filingsLimit, "limit", "n", domain.DefaultFilingLimit, "maximum number of results")
	filingsCmd.Flags().StringVar(&filingsFrom, "from", "", "inclusive start date (YYYY-MM-DD)")
	filingsCmd.Flags().StringVar(&filingsTo, "to", "", "inclusive end date (YYYY-MM-DD)")
	filingsCmd.Flags().BoolVar(&filingsDownload, "download", false, "save each result as a JSON file")
	filingsCmd.Flags().StringVar(&filingsOut, "out", "", `directory for downloaded filings (default "downloads")`)
	filingsCmd.Flags().BoolVar(&filingsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(filingsCmd)
}

func runFilings(cmd *cobra.Command, args []string) error {
	service, err := ensureFilingService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	company, err := service.LookupCompany(ctx, args[0])
	if err != nil {
		return err
	}

	filter, err := buildFilter(cmd)
	if err != nil {
		return err
	}

	filings, err := service.ListFilings(ctx, company.CIK, filter)
	if err != nil {
		return err
	}

	if filingsJSON {
		return outputFilingsJSON(cmd, filings)
	}

	cmd.Printf("\nCompany: %s (CIK %s)\n\n", company.Name, company.CIK)

	if len(filings) == 0 {
		cmd.Println("No filings found for the given filters.")
		return nil
	}

	outputFilingsTable(cmd, filings)

	if !filingsDownload {
		return nil
	}

	return downloadFilings(cmd, filings)
}

// buildFilter assembles the query filter from the command flags, falling
// back to the configured default limit when --limit is not given.
func buildFilter(cmd *cobra.Command) (domain.FilingFilter, error) {
	filter := domain.DefaultFilingFilter()
	filter.FormTypes = filingsForms
	filter.Limit = filingsLimit

	if !cmd.Flags().Changed("limit") {
		if cfg, err := ensureConfig(); err == nil {
			if limit := cfg.GetInt("query.limit"); limit > 0 {
				filter.Limit = limit
			}
		}
	}

	from, err := parseDateFlag("from", filingsFrom)
	if err != nil {
		return filter, err
	}
	to, err := parseDateFlag("to", filingsTo)
	if err != nil {
		return filter, err
	}
	filter.DateFrom = from
	filter.DateTo = to

	return filter, nil
}

// parseDateFlag parses an optional YYYY-MM-DD flag value.
func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q (expected YYYY-MM-DD): %w", name, value, domain.ErrInvalidInput)
	}
	return &t, nil
}

func outputFilingsTable(cmd *cobra.Command, filings []domain.Filing) {
	cmd.Printf("%-12s | %-6s | %s\n", "DATE", "FORM", "ACCESSION #")
	cmd.Println(strings.Repeat("-", 45))
	for i := range filings {
		cmd.Printf("%-12s | %-6s | %s\n",
			filings[i].DateString(), filings[i].FormType, filings[i].AccessionNumber)
	}
}

// filingView is the JSON shape of one listed filing; it matches the
// exported file layout so both outputs agree.
type filingView struct {
	CIK             string `json:"cik"`
	CompanyName     string `json:"company_name"`
	FormType        string `json:"form_type"`
	FilingDate      string `json:"filing_date"`
	AccessionNumber string `json:"accession_number"`
}

func outputFilingsJSON(cmd *cobra.Command, filings []domain.Filing) error {
	views := make([]filingView, 0, len(filings))
	for i := range filings {
		views = append(views, filingView{
			CIK:             filings[i].CIK,
			CompanyName:     filings[i].CompanyName,
			FormType:        filings[i].FormType,
			FilingDate:      filings[i].DateString(),
			AccessionNumber: filings[i].AccessionNumber,
		})
	}

	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal filings: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// downloadFilings exports every listed filing, reporting each outcome.
// Failures do not abort the batch but the command exits non-zero when
// any export failed.
func downloadFilings(cmd *cobra.Command, filings []domain.Filing) error {
	service, err := ensureFilingService()
	if err != nil {
		return err
	}

	dir := filingsOut
	if dir == "" {
		if cfg, err := ensureConfig(); err == nil {
			dir = cfg.GetString("export.dir")
		}
	}

	cmd.Println("\nDownloading filings...")

	results := service.ExportFilings(cmd.Context(), filings, dir)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			cmd.PrintErrf("Failed: %s: %v\n", r.AccessionNumber, r.Err)
			continue
		}
		cmd.Printf("Saved: %s\n", r.Path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(results))
	}

	cmd.Printf("\n%d filings saved\n", len(results))
	return nil
}
