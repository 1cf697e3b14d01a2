// Package main is the payscope operator CLI: seed the backing table, print
// summaries and export filtered CSV without running the API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"payscope/internal/core/version"
	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "payscope",
	Short:         "Employee compensation dashboard tooling",
	Long:          "payscope seeds the employee table from a CSV URL and runs the dashboard pipeline from the command line.",
	Version:       version.For("payscope").Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	// stdout carries command output such as export -o -
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	logger.Init(lo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 3 when the dataset is unreachable, 2 for bad input, 1 otherwise
func exitCode(err error) int {
	switch {
	case perr.IsCode(err, perr.ErrorCodeDataUnavailable):
		return 3
	case perr.IsCode(err, perr.ErrorCodeValidation), perr.IsCode(err, perr.ErrorCodeInvalidArgument):
		return 2
	}
	return 1
}
