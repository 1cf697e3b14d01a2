package repo

import (
	"context"
	"strings"
	"testing"

	"payscope/internal/modkit/repokit"
	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/store"
	"payscope/internal/services/seed/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

type call struct {
	sql  string
	args []any
}

// fakePG answers the two probe queries and records writes
type fakePG struct {
	exists  bool
	hasRows bool
	calls   []call
}

type tag int64

func (t tag) String() string      { return "" }
func (t tag) RowsAffected() int64 { return int64(t) }

type row struct{ v any }

func (r row) Scan(dst ...any) error {
	switch d := dst[0].(type) {
	case **string:
		if s, ok := r.v.(string); ok {
			*d = &s
		} else {
			*d = nil
		}
	case *bool:
		*d = r.v.(bool)
	}
	return nil
}

func (f *fakePG) Exec(_ context.Context, sql string, args ...any) (repokit.CommandTag, error) {
	f.calls = append(f.calls, call{sql, args})
	if strings.HasPrefix(sql, "INSERT") {
		return tag(strings.Count(sql, "(") - 1), nil
	}
	return tag(0), nil
}
func (f *fakePG) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (f *fakePG) QueryRow(_ context.Context, sql string, args ...any) repokit.Row {
	f.calls = append(f.calls, call{sql, args})
	if strings.Contains(sql, "to_regclass") {
		if f.exists {
			return row{"t"}
		}
		return row{nil}
	}
	return row{f.hasRows}
}
func (f *fakePG) Tx(_ context.Context, fn func(repokit.Queryer) error) error { return fn(f) }

func (f *fakePG) statements() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = strings.Fields(c.sql)[0] + " " + strings.Fields(c.sql)[1]
	}
	return out
}

var batch = domain.Batch{
	Columns: []string{"domain", "role", "salary"},
	Rows:    [][]string{{"Eng", "Dev", "1500000"}, {"Sales", "Rep", ""}},
}

func TestPG_CreatesMissingTable(t *testing.T) {
	db := &fakePG{}
	res, err := NewPG(db).Write(context.Background(), "updated_employees", domain.ModeSkip, batch)
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 2 || res.Skipped {
		t.Fatalf("result %+v", res)
	}
	got := strings.Join(db.statements(), "|")
	if got != "SELECT pg_advisory_xact_lock(hashtext($1))|SELECT to_regclass($1)::text|CREATE TABLE|INSERT INTO" {
		t.Fatalf("statements %s", got)
	}
	ins := db.calls[len(db.calls)-1]
	if !strings.Contains(ins.sql, `("domain", "role", "salary") VALUES ($1,$2,$3),($4,$5,$6)`) {
		t.Fatalf("insert %q", ins.sql)
	}
	if ins.args[5] != nil {
		t.Fatalf("empty cell should be NULL, got %#v", ins.args[5])
	}
}

func TestPG_MixedCaseTableLooksUpQuotedName(t *testing.T) {
	db := &fakePG{}
	if _, err := NewPG(db).Write(context.Background(), "HR.Staff", domain.ModeSkip, batch); err != nil {
		t.Fatal(err)
	}
	reg, create := db.calls[1], db.calls[2]
	if len(reg.args) != 1 || reg.args[0] != `"HR"."Staff"` {
		t.Fatalf("to_regclass args %#v", reg.args)
	}
	if !strings.HasPrefix(create.sql, `CREATE TABLE "HR"."Staff" (`) {
		t.Fatalf("create %q", create.sql)
	}
}

func TestPG_SkipFilledTable(t *testing.T) {
	db := &fakePG{exists: true, hasRows: true}
	res, err := NewPG(db).Write(context.Background(), "updated_employees", domain.ModeSkip, batch)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped || res.Written != 0 {
		t.Fatalf("result %+v", res)
	}
	for _, s := range db.statements() {
		if strings.HasPrefix(s, "INSERT") || strings.HasPrefix(s, "DELETE") {
			t.Fatalf("skip wrote: %s", s)
		}
	}
}

func TestPG_ReplaceDeletesFirst(t *testing.T) {
	db := &fakePG{exists: true, hasRows: true}
	res, err := NewPG(db).Write(context.Background(), "hr.staff", domain.ModeReplace, batch)
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 2 {
		t.Fatalf("result %+v", res)
	}
	got := strings.Join(db.statements()[2:], "|")
	if got != "SELECT EXISTS|DELETE FROM|INSERT INTO" {
		t.Fatalf("statements %s", got)
	}
	if !strings.Contains(db.calls[3].sql, `"hr"."staff"`) {
		t.Fatalf("delete %q", db.calls[3].sql)
	}
}

func TestPG_Chunks(t *testing.T) {
	b := domain.Batch{Columns: []string{"x"}}
	for range insertBatch + 1 {
		b.Rows = append(b.Rows, []string{"1"})
	}
	db := &fakePG{}
	res, err := NewPG(db).Write(context.Background(), "t", domain.ModeReplace, b)
	if err != nil {
		t.Fatal(err)
	}
	inserts := 0
	for _, s := range db.statements() {
		if s == "INSERT INTO" {
			inserts++
		}
	}
	if inserts != 2 || res.Written != insertBatch+1 {
		t.Fatalf("inserts %d written %d", inserts, res.Written)
	}
}

func TestCheckIdents(t *testing.T) {
	bad := map[string]struct {
		table string
		b     domain.Batch
	}{
		"table":     {"t;drop", batch},
		"column":    {"t", domain.Batch{Columns: []string{"a b"}}},
		"duplicate": {"t", domain.Batch{Columns: []string{"a", "a"}}},
		"ragged":    {"t", domain.Batch{Columns: []string{"a"}, Rows: [][]string{{"1", "2"}}}},
		"empty":     {"t", domain.Batch{}},
	}
	for name, tc := range bad {
		if err := checkIdents(tc.table, tc.b); err == nil {
			t.Fatalf("%s accepted", name)
		}
	}
}

// fakeCH records statements; count answers the row probe
type fakeCH struct {
	count    uint64
	execs    []string
	inserted [][]any
}

type countRows struct {
	n    uint64
	done bool
}

func (r *countRows) Next() bool             { ok := !r.done; r.done = true; return ok }
func (r *countRows) Scan(dst ...any) error  { *(dst[0].(*uint64)) = r.n; return nil }
func (r *countRows) Err() error             { return nil }
func (r *countRows) Close()                 {}
func (r *countRows) Columns() []string      { return []string{"count()"} }

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return nil
}
func (f *fakeCH) Insert(_ context.Context, _ string, rows [][]any) error {
	f.inserted = append(f.inserted, rows...)
	return nil
}
func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) {
	return &countRows{n: f.count}, nil
}
func (f *fakeCH) Close() error { return nil }

func TestCH_Write(t *testing.T) {
	ch := &fakeCH{count: 5}
	res, err := NewCH(ch).Write(context.Background(), "t", domain.ModeSkip, batch)
	if err != nil || !res.Skipped || len(ch.inserted) != 0 {
		t.Fatalf("skip: %v %+v", err, res)
	}
	if !strings.Contains(ch.execs[0], "`salary` Nullable(String)") {
		t.Fatalf("ddl %q", ch.execs[0])
	}

	ch = &fakeCH{count: 5}
	res, err = NewCH(ch).Write(context.Background(), "t", domain.ModeReplace, batch)
	if err != nil || res.Written != 2 {
		t.Fatalf("replace: %v %+v", err, res)
	}
	if ch.execs[1] != "TRUNCATE TABLE `t`" {
		t.Fatalf("execs %v", ch.execs)
	}
	if v, ok := ch.inserted[1][2].(*string); !ok || v != nil {
		t.Fatalf("empty cell %#v", ch.inserted[1][2])
	}
}

// flakyPG fails the first fails transactions with code before delegating
type flakyPG struct {
	*fakePG
	code  string
	fails int
	tries int
}

func (f *flakyPG) Tx(ctx context.Context, fn func(repokit.Queryer) error) error {
	f.tries++
	if f.tries <= f.fails {
		return &pgconn.PgError{Code: f.code}
	}
	return f.fakePG.Tx(ctx, fn)
}

func TestPG_RetriesDeadlock(t *testing.T) {
	db := &flakyPG{fakePG: &fakePG{}, code: "40P01", fails: 2}
	res, err := NewPG(db).Write(context.Background(), "updated_employees", domain.ModeSkip, batch)
	if err != nil {
		t.Fatal(err)
	}
	if db.tries != 3 || res.Written != 2 {
		t.Fatalf("tries=%d written=%d", db.tries, res.Written)
	}

	db = &flakyPG{fakePG: &fakePG{}, code: "40P01", fails: 5}
	if _, err := NewPG(db).Write(context.Background(), "updated_employees", domain.ModeSkip, batch); err == nil || db.tries != pgAttempts {
		t.Fatalf("err=%v tries=%d", err, db.tries)
	}
}

func TestPG_MapsPostgresErrors(t *testing.T) {
	db := &flakyPG{fakePG: &fakePG{}, code: "42P01", fails: 1}
	_, err := NewPG(db).Write(context.Background(), "updated_employees", domain.ModeSkip, batch)
	if db.tries != 1 || !perr.IsCode(err, perr.ErrorCodeDataUnavailable) {
		t.Fatalf("tries=%d err=%v", db.tries, err)
	}
	if _, err := NewPG(&fakePG{}).Write(context.Background(), "bad table", domain.ModeSkip, batch); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("bad table err %v", err)
	}
}
