// Package repo writes bootstrap batches to Postgres or ClickHouse
package repo

import (
	"regexp"
	"strings"

	perr "payscope/internal/platform/errors"
	"payscope/internal/services/seed/domain"
)

const insertBatch = 500

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdents(table string, b domain.Batch) error {
	for _, p := range strings.Split(table, ".") {
		if !identRe.MatchString(p) {
			return perr.Validationf("seed: bad table name %q", table)
		}
	}
	if len(b.Columns) == 0 {
		return perr.Validationf("seed: batch has no columns")
	}
	seen := map[string]bool{}
	for _, c := range b.Columns {
		if !identRe.MatchString(c) {
			return perr.Validationf("seed: bad column name %q", c)
		}
		if seen[c] {
			return perr.Validationf("seed: duplicate column %q", c)
		}
		seen[c] = true
	}
	for i, r := range b.Rows {
		if len(r) != len(b.Columns) {
			return perr.Validationf("seed: row %d has %d cells, want %d", i+1, len(r), len(b.Columns))
		}
	}
	return nil
}

// cell maps an empty CSV field to NULL
func cell(s string) any {
	if s == "" {
		return nil
	}
	return s
}
