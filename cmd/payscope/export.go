package main

import (
	"os"

	"payscope/internal/core/export"
	"payscope/internal/platform/logger"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered rows as CSV",
	Long:  "Writes the filtered subset in the dashboard download format. Use --out - for stdout.",
	RunE:  runExport,
}

var (
	exportCriteria criteriaFlags
	exportOut      string
)

func init() {
	exportCriteria.bind(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", export.FileName, "Output file, - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	svc, err := e.dashboard()
	if err != nil {
		return err
	}
	body, err := svc.Export(cmd.Context(), exportCriteria.input(cmd.Flags()))
	if err != nil {
		return err
	}

	if exportOut == "-" {
		_, err = os.Stdout.Write(body)
		return err
	}
	if err := os.WriteFile(exportOut, body, 0o644); err != nil {
		return err
	}
	logger.Get().Info().Str("file", exportOut).Int("bytes", len(body)).Msg("export written")
	return nil
}
