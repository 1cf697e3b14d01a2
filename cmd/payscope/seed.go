package main

import (
	"encoding/json"
	"fmt"
	"os"

	seedmod "payscope/internal/services/seed/module"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the employee table from a CSV URL",
	Long:  "Downloads the bootstrap CSV and writes it to the configured table. Mode skip leaves a non-empty table alone; replace rewrites it. Running seed twice never duplicates rows.",
	RunE:  runSeed,
}

var (
	seedURL    string
	seedTable  string
	seedMode   string
	seedTarget string
)

func init() {
	seedCmd.Flags().StringVar(&seedURL, "url", "", "CSV URL (overrides CORE_SEED_URL)")
	seedCmd.Flags().StringVar(&seedTable, "table", "", "Target table (overrides CORE_SEED_TABLE)")
	seedCmd.Flags().StringVar(&seedMode, "mode", "", "skip or replace (overrides CORE_SEED_MODE)")
	seedCmd.Flags().StringVar(&seedTarget, "target", "", "pg or ch (overrides CORE_SEED_TARGET)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	opts := seedmod.FromConfig(e.root)
	override(&opts.URL, seedURL)
	override(&opts.Table, seedTable)
	override(&opts.Mode, seedMode)
	override(&opts.Target, seedTarget)
	if opts.URL == "" {
		return fmt.Errorf("no CSV URL: pass --url or set CORE_SEED_URL")
	}

	m, err := seedmod.New(e.deps, opts)
	if err != nil {
		return err
	}
	rep, err := m.Seed(cmd.Context())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
