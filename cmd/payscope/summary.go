package main

import (
	"encoding/json"
	"fmt"
	"os"

	"payscope/internal/services/api/dashboard/domain"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Filter the dataset and print the dashboard summary",
	RunE:  runSummary,
}

var (
	summaryCriteria criteriaFlags
	summaryFormat   string
	summaryRows     int
)

func init() {
	summaryCriteria.bind(summaryCmd.Flags())
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "json", "json or table")
	summaryCmd.Flags().IntVar(&summaryRows, "rows", 0, "Also print up to this many filtered rows (table format)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if summaryFormat != "json" && summaryFormat != "table" {
		return fmt.Errorf("unknown format %q: want json or table", summaryFormat)
	}
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	svc, err := e.dashboard()
	if err != nil {
		return err
	}
	limit := summaryRows
	if limit <= 0 {
		limit = 1
	}
	out, err := svc.Apply(cmd.Context(), domain.ApplyInput{
		CriteriaInput: summaryCriteria.input(cmd.Flags()),
		Limit:         limit,
	})
	if err != nil {
		return err
	}

	if summaryFormat == "table" {
		renderSummary(os.Stdout, out.Summary)
		if summaryRows > 0 {
			renderRows(os.Stdout, out.Rows, out.Total)
		}
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Summary)
}
