package repo

import (
	"context"
	"fmt"
	"strings"

	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/store"
	"payscope/internal/services/dataset/domain"
)

// CH reads the table from ClickHouse
type CH struct {
	ch store.Clickhouse
}

// NewCH constructs a ClickHouse source
func NewCH(ch store.Clickhouse) *CH { return &CH{ch: ch} }

var _ domain.Source = (*CH)(nil)

// Fetch implements domain.Source
func (c *CH) Fetch(ctx context.Context, spec domain.ColumnSpec) ([]domain.RawRow, error) {
	db, table := "", spec.Table
	if i := strings.IndexByte(table, '.'); i >= 0 {
		db, table = table[:i], table[i+1:]
	}

	q := `SELECT name FROM system.columns WHERE database = currentDatabase() AND table = ?`
	args := []any{table}
	if db != "" {
		q = `SELECT name FROM system.columns WHERE database = ? AND table = ?`
		args = []any{db, table}
	}
	rows, err := c.ch.Query(ctx, q, args...)
	if err != nil {
		return nil, perr.FromClickhouse(err, "dataset: columns of "+spec.Table)
	}
	have, err := store.Collect(rows, func(r store.Row) (string, error) {
		var s string
		return s, r.Scan(&s)
	})
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(have) == 0 {
		return nil, fmt.Errorf("%w: table %s does not exist", domain.ErrDataUnavailable, spec.Table)
	}

	cols, err := selectList(spec, have, chQuote, func(c string) string { return "ifNull(toString(" + c + "), '')" })
	if err != nil {
		return nil, err
	}
	rows, err = c.ch.Query(ctx, "SELECT "+strings.Join(cols, ", ")+" FROM "+chQuote(spec.Table))
	if err != nil {
		return nil, perr.FromClickhouse(err, "dataset: read "+spec.Table)
	}
	defer rows.Close()
	return store.Collect(rows, func(r store.Row) (domain.RawRow, error) { return scanRaw(r) })
}

// chQuote backticks each part; names were validated by ColumnSpec.Normalized
func chQuote(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + p + "`"
	}
	return strings.Join(parts, ".")
}
