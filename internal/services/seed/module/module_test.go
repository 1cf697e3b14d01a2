package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payscope/internal/modkit"
	"payscope/internal/modkit/module"
	"payscope/internal/platform/config"
	"payscope/internal/platform/store"
	"payscope/internal/services/seed/domain"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_SEED_URL", "https://example.invalid/e.csv")
	t.Setenv("CORE_SEED_MODE", "replace")
	t.Setenv("CORE_SEED_HTTP_TIMEOUT", "5s")
	o := FromConfig(config.New())
	if o.URL != "https://example.invalid/e.csv" || o.Mode != "replace" || o.Timeout != 5*time.Second ||
		o.Table != "updated_employees" || o.Target != "pg" || o.OnStart {
		t.Fatalf("options %+v", o)
	}
}

type memCH struct{ rows [][]any }

type zeroCount struct{ done bool }

func (r *zeroCount) Next() bool           { ok := !r.done; r.done = true; return ok }
func (r *zeroCount) Scan(d ...any) error  { *(d[0].(*uint64)) = 0; return nil }
func (r *zeroCount) Err() error           { return nil }
func (r *zeroCount) Close()               {}
func (r *zeroCount) Columns() []string    { return nil }

func (m *memCH) Exec(context.Context, string, ...any) error { return nil }
func (m *memCH) Insert(_ context.Context, _ string, rows [][]any) error {
	m.rows = append(m.rows, rows...)
	return nil
}
func (m *memCH) Query(context.Context, string, ...any) (store.Rows, error) { return &zeroCount{}, nil }
func (m *memCH) Close() error                                           { return nil }

func TestSeed_EndToEndOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("domain,role,level,mode,year,salary_in_lakhs,bonus\nEng,Dev,L1,Remote,2023,15,\n"))
	}))
	defer srv.Close()

	ch := &memCH{}
	m, err := New(modkit.Deps{CH: ch}, Options{URL: srv.URL, Mode: "skip", Table: "emp", Target: "ch", Timeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := module.MustPortsOf[Ports](m).Seeder.Seed(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Written != 1 || rep.Mode != domain.ModeSkip || rep.Target != "ch" || rep.RunID == "" || len(ch.rows) != 1 {
		t.Fatalf("report %+v rows %d", rep, len(ch.rows))
	}
}

func TestNew_Rejects(t *testing.T) {
	if _, err := New(modkit.Deps{}, Options{Mode: "append"}); err == nil {
		t.Fatal("bad mode accepted")
	}
	if _, err := New(modkit.Deps{}, Options{Mode: "skip", Target: "pg"}); err == nil {
		t.Fatal("pg target without PG accepted")
	}
	if _, err := New(modkit.Deps{}, Options{Mode: "skip", Target: "ch"}); err == nil {
		t.Fatal("ch target without CH accepted")
	}
}
