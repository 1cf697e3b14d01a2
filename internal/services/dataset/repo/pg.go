package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"payscope/internal/modkit/repokit"
	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/store"
	"payscope/internal/services/dataset/domain"

	"github.com/jackc/pgx/v5"
)

// PG reads through a read only transaction
type PG struct {
	db repokit.TxRunner
}

// NewPG wraps db so every read runs READ ONLY with a statement timeout
func NewPG(db repokit.TxRunner, timeoutMs int) *PG {
	return &PG{db: repokit.WithBeginHooks(db, repokit.ReadOnly, repokit.StatementTimeout(timeoutMs))}
}

var _ domain.Source = (*PG)(nil)

// Fetch implements domain.Source
func (p *PG) Fetch(ctx context.Context, spec domain.ColumnSpec) ([]domain.RawRow, error) {
	var out []domain.RawRow
	// quoted so to_regclass resolves the same relation the SELECT reads
	qt := pgQuote(spec.Table)
	err := repokit.WithTx(ctx, p.db, func(q repokit.Queryer) error {
		reg, err := store.Scalar[*string](ctx, q, `SELECT to_regclass($1)::text`, qt)
		if err != nil {
			return err
		}
		if reg == nil {
			return fmt.Errorf("%w: table %s does not exist", domain.ErrDataUnavailable, spec.Table)
		}

		have, err := store.Many(ctx, q, func(r store.Row) (string, error) {
			var s string
			return s, r.Scan(&s)
		}, `SELECT attname::text FROM pg_attribute
			WHERE attrelid = to_regclass($1) AND attnum > 0 AND NOT attisdropped`, qt)
		if err != nil {
			return err
		}

		cols, err := selectList(spec, have, pgQuote, func(c string) string { return "coalesce(" + c + "::text, '')" })
		if err != nil {
			return err
		}
		sql := "SELECT " + strings.Join(cols, ", ") + " FROM " + qt
		out, err = store.Many(ctx, q, func(r store.Row) (domain.RawRow, error) { return scanRaw(r) }, sql)
		return err
	})
	if err != nil && !errors.Is(err, domain.ErrDataUnavailable) {
		return nil, perr.FromPostgres(err, "dataset: read "+spec.Table)
	}
	return out, err
}

func pgQuote(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
