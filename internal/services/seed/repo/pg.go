package repo

import (
	"context"
	"fmt"
	"strings"

	"payscope/internal/modkit/repokit"
	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/store"
	"payscope/internal/services/seed/domain"

	"github.com/jackc/pgx/v5"
)

// PG writes inside a single transaction guarded by an advisory lock on the
// table name, so concurrent seeders serialize and never double insert
type PG struct {
	db repokit.TxRunner
}

// NewPG constructs a Postgres writer
func NewPG(db repokit.TxRunner) *PG { return &PG{db: db} }

var _ domain.Writer = (*PG)(nil)

// pgAttempts bounds retries of the whole transaction on serialization or deadlock failures
const pgAttempts = 3

// Write implements domain.Writer
func (p *PG) Write(ctx context.Context, table string, mode domain.Mode, b domain.Batch) (domain.Result, error) {
	if err := checkIdents(table, b); err != nil {
		return domain.Result{}, err
	}
	var (
		res domain.Result
		err error
	)
	for range pgAttempts {
		res, err = p.write(ctx, table, mode, b)
		if err == nil || !perr.Retryable(err) {
			break
		}
	}
	if err != nil {
		return domain.Result{}, perr.FromPostgresf(err, "seed %s", table)
	}
	return res, nil
}

func (p *PG) write(ctx context.Context, table string, mode domain.Mode, b domain.Batch) (domain.Result, error) {
	qt := pgx.Identifier(strings.Split(table, ".")).Sanitize()

	var res domain.Result
	err := repokit.WithTx(ctx, p.db, func(q repokit.Queryer) error {
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "payscope.seed."+table); err != nil {
			return err
		}
		reg, err := store.Scalar[*string](ctx, q, `SELECT to_regclass($1)::text`, qt)
		if err != nil {
			return err
		}
		if reg == nil {
			cols := make([]string, len(b.Columns))
			for i, c := range b.Columns {
				cols[i] = pgx.Identifier{c}.Sanitize() + " text"
			}
			if _, err := q.Exec(ctx, "CREATE TABLE "+qt+" ("+strings.Join(cols, ", ")+")"); err != nil {
				return err
			}
		} else {
			has, err := store.Scalar[bool](ctx, q, "SELECT EXISTS (SELECT 1 FROM "+qt+")")
			if err != nil {
				return err
			}
			if has && mode == domain.ModeSkip {
				res.Skipped = true
				return nil
			}
			if has {
				if _, err := q.Exec(ctx, "DELETE FROM "+qt); err != nil {
					return err
				}
			}
		}

		n, err := insertPG(ctx, q, qt, b)
		res.Written = n
		return err
	})
	if err != nil {
		return domain.Result{}, err
	}
	return res, nil
}

func insertPG(ctx context.Context, q repokit.Queryer, qt string, b domain.Batch) (int, error) {
	cols := make([]string, len(b.Columns))
	for i, c := range b.Columns {
		cols[i] = pgx.Identifier{c}.Sanitize()
	}
	head := "INSERT INTO " + qt + " (" + strings.Join(cols, ", ") + ") VALUES "
	width := len(b.Columns)

	// postgres caps a statement at 65535 parameters
	step := max(1, min(insertBatch, 65535/width))
	written := 0
	for start := 0; start < len(b.Rows); start += step {
		chunk := b.Rows[start:min(start+step, len(b.Rows))]

		var sb strings.Builder
		sb.WriteString(head)
		args := make([]any, 0, len(chunk)*width)
		for i, r := range chunk {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('(')
			for j := range r {
				if j > 0 {
					sb.WriteByte(',')
				}
				fmt.Fprintf(&sb, "$%d", i*width+j+1)
				args = append(args, cell(r[j]))
			}
			sb.WriteByte(')')
		}
		tag, err := q.Exec(ctx, sb.String(), args...)
		if err != nil {
			return written, err
		}
		written += int(tag.RowsAffected())
	}
	return written, nil
}
