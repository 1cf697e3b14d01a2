// Package domain defines the bootstrap seeding types and ports
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Mode chooses how an existing table is treated
type Mode string

const (
	// ModeSkip leaves a table that already has rows untouched
	ModeSkip Mode = "skip"
	// ModeReplace swaps the table contents for the download in one step
	ModeReplace Mode = "replace"
)

// ParseMode accepts skip or replace
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSkip, ModeReplace:
		return m, nil
	case "":
		return ModeSkip, nil
	}
	return "", fmt.Errorf("seed: unknown mode %q", s)
}

// Batch is a parsed CSV ready to store; every cell is kept as text
type Batch struct {
	Columns []string
	Rows    [][]string
}

// Result is what a Writer did
type Result struct {
	Written int
	Skipped bool
}

// Writer stores a batch into table idempotently
type Writer interface {
	Write(ctx context.Context, table string, mode Mode, b Batch) (Result, error)
}

// Fetcher downloads the bootstrap document
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Report describes one seeding run
type Report struct {
	RunID   string        `json:"run_id"`
	URL     string        `json:"url"`
	Target  string        `json:"target"`
	Table   string        `json:"table"`
	Mode    Mode          `json:"mode"`
	Fetched int           `json:"fetched"`
	Written int           `json:"written"`
	Skipped bool          `json:"skipped"`
	Started time.Time     `json:"started"`
	Took    time.Duration `json:"took_ns"`
}
