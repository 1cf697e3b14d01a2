package repo

import (
	"context"
	"strings"

	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/store"
	"payscope/internal/services/seed/domain"
)

// CH writes to ClickHouse; there are no transactions, so replace truncates
// then inserts and a failed insert leaves the table empty until the next run
type CH struct {
	ch store.Clickhouse
}

// NewCH constructs a ClickHouse writer
func NewCH(ch store.Clickhouse) *CH { return &CH{ch: ch} }

var _ domain.Writer = (*CH)(nil)

// Write implements domain.Writer
func (c *CH) Write(ctx context.Context, table string, mode domain.Mode, b domain.Batch) (domain.Result, error) {
	if err := checkIdents(table, b); err != nil {
		return domain.Result{}, err
	}
	res, err := c.write(ctx, table, mode, b)
	if err != nil {
		return domain.Result{}, perr.FromClickhouse(err, "seed "+table)
	}
	return res, nil
}

func (c *CH) write(ctx context.Context, table string, mode domain.Mode, b domain.Batch) (domain.Result, error) {
	qt := chQuote(table)

	cols := make([]string, len(b.Columns))
	for i, col := range b.Columns {
		cols[i] = "`" + col + "` Nullable(String)"
	}
	ddl := "CREATE TABLE IF NOT EXISTS " + qt + " (" + strings.Join(cols, ", ") + ") ENGINE = MergeTree ORDER BY tuple()"
	if err := c.ch.Exec(ctx, ddl); err != nil {
		return domain.Result{}, err
	}

	rows, err := c.ch.Query(ctx, "SELECT count() FROM "+qt)
	if err != nil {
		return domain.Result{}, err
	}
	counts, err := store.Collect(rows, func(r store.Row) (uint64, error) {
		var n uint64
		return n, r.Scan(&n)
	})
	rows.Close()
	if err != nil {
		return domain.Result{}, err
	}

	var res domain.Result
	if len(counts) == 1 && counts[0] > 0 {
		if mode == domain.ModeSkip {
			res.Skipped = true
			return res, nil
		}
		if err := c.ch.Exec(ctx, "TRUNCATE TABLE "+qt); err != nil {
			return domain.Result{}, err
		}
	}

	out := make([][]any, len(b.Rows))
	for i, r := range b.Rows {
		vals := make([]any, len(r))
		for j, s := range r {
			if s == "" {
				vals[j] = (*string)(nil)
			} else {
				vals[j] = &r[j]
			}
		}
		out[i] = vals
	}
	if err := c.ch.Insert(ctx, qt, out); err != nil {
		return domain.Result{}, err
	}
	res.Written = len(out)
	return res, nil
}

func chQuote(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + p + "`"
	}
	return strings.Join(parts, ".")
}
