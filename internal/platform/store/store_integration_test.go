//go:build integration_pg

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"payscope/internal/platform/store/pgtest"
)

func TestPostgresAdapterIntegration(t *testing.T) {
	dsn := pgtest.Start(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := Open(ctx, Config{AppName: "payscope-it", PG: PGConfig{Enabled: true, URL: dsn, LogSQL: true}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = s.Close(ctx) }()

	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if _, err := s.PG.Exec(ctx, `create table emp (role text not null, salary double precision)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("abort")
	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `insert into emp values ('Dev', 1500000)`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Tx error = %v", err)
	}
	if n, _ := Scalar[int64](ctx, s.PG, `select count(*) from emp`); n != 0 {
		t.Fatalf("rolled back tx left %d rows", n)
	}

	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `insert into emp values ('Dev', 1500000), ('Rep', 900000)`)
		return err
	})
	if err != nil {
		t.Fatalf("commit tx: %v", err)
	}

	roles, err := Many(ctx, s.PG, func(r Row) (string, error) {
		var s string
		return s, r.Scan(&s)
	}, `select role from emp order by role`)
	if err != nil {
		t.Fatalf("Many: %v", err)
	}
	if len(roles) != 2 || roles[0] != "Dev" || roles[1] != "Rep" {
		t.Fatalf("roles = %v", roles)
	}

	app, err := Scalar[string](ctx, s.PG, `select current_setting('application_name')`)
	if err != nil || app != "payscope-it" {
		t.Fatalf("application_name = %q, %v", app, err)
	}
}
