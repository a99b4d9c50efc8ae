package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var companyJSON bool

var companyCmd = &cobra.Command{
	Use:   "company [ticker]",
	Short: "Resolve a ticker symbol to a company identity",
	Long: `Looks up a ticker symbol in the company directory and prints the
resolved identity. The lookup is case-insensitive and the CIK is shown
zero-padded to ten digits.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompany,
}

func init() {
	companyCmd.Flags().BoolVar(&companyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(companyCmd)
}

func runCompany(cmd *cobra.Command, args []string) error {
	service, err := ensureFilingService()
	if err != nil {
		return err
	}

	company, err := service.LookupCompany(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if companyJSON {
		view := struct {
			Ticker string `json:"ticker"`
			CIK    string `json:"cik"`
			Name   string `json:"name"`
		}{company.Ticker, company.CIK, company.Name}

		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal company: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Ticker: %s\n", company.Ticker)
	cmd.Printf("CIK:    %s\n", company.CIK)
	cmd.Printf("Name:   %s\n", company.Name)
	return nil
}
