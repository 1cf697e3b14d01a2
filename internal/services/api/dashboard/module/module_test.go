package module

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"payscope/internal/core/export"
	"payscope/internal/core/pipeline"
	"payscope/internal/modkit"
	phttp "payscope/internal/platform/net/http"
	"payscope/internal/services/api/dashboard/domain"
	dsdomain "payscope/internal/services/dataset/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSnap struct {
	t   pipeline.Table
	err error
}

func (f *fakeSnap) Table(context.Context) (pipeline.Table, error) { return f.t, f.err }
func (f *fakeSnap) Reload(context.Context) (dsdomain.LoadReport, error) {
	return dsdomain.LoadReport{Source: "pg", Loaded: f.t.Len()}, f.err
}
func (f *fakeSnap) Report() (dsdomain.LoadReport, bool) { return dsdomain.LoadReport{}, false }

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       string          `json:"code"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func employees() pipeline.Table {
	bonus := pipeline.Float(100_000)
	return pipeline.NewTable([]pipeline.Record{
		{Domain: "Eng", Role: "Dev", Level: "Senior", Mode: "Remote", Year: 2023, Salary: 2_500_000, Bonus: bonus},
		{Domain: "Eng", Role: "Ops", Level: "Junior", Mode: "Office", Year: 2023, Salary: 900_000},
		{Domain: "Sales", Role: "Rep", Level: "Senior", Mode: "Remote", Year: 2024, Salary: 1_200_000},
	})
}

func mount(t *testing.T, snap dsdomain.SnapshotPort) http.Handler {
	t.Helper()
	m := New(modkit.Deps{}, modkit.WithPorts(Ports{Snapshot: snap, Options: pipeline.DefaultOptions()}))
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	return r.Mux()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestNew_RequiresSnapshot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic without snapshot port")
		}
	}()
	New(modkit.Deps{})
}

func TestControls(t *testing.T) {
	h := mount(t, &fakeSnap{t: employees()})
	rec := do(t, h, http.MethodGet, "/dashboard/controls", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out domain.ControlsOutput
	if err := json.Unmarshal(decode(t, rec).Data, &out); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(out.Options.Domains) != "[All Eng Sales]" || fmt.Sprint(out.Options.Years) != "[2023 2024]" {
		t.Fatalf("options %+v", out.Options)
	}
	if *out.Defaults.MinPay != 900_000 || *out.Defaults.MaxPay != 2_500_000 {
		t.Fatalf("defaults %+v", out.Defaults)
	}
}

func TestApply(t *testing.T) {
	h := mount(t, &fakeSnap{t: employees()})

	cases := []struct {
		name  string
		body  string
		total int
	}{
		{"empty body resets", "", 3},
		{"domain", `{"domain":"Eng"}`, 2},
		{"all is unconstrained", `{"domain":"All","mode":"Remote"}`, 2},
		{"roles omitted", `{"roles":null}`, 3},
		{"roles empty", `{"roles":[]}`, 0},
		{"inverted range", `{"salary_min":2000000,"salary_max":1000000}`, 0},
		{"high salary", `{"high_salary_only":true}`, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/dashboard/apply", tc.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d: %s", rec.Code, rec.Body)
			}
			var out domain.ApplyOutput
			if err := json.Unmarshal(decode(t, rec).Data, &out); err != nil {
				t.Fatal(err)
			}
			if out.Total != tc.total || out.Summary.RowCount != tc.total {
				t.Fatalf("total %d, want %d", out.Total, tc.total)
			}
		})
	}
}

func TestApply_LimitTruncates(t *testing.T) {
	h := mount(t, &fakeSnap{t: employees()})
	rec := do(t, h, http.MethodPost, "/dashboard/apply", `{"limit":1}`)
	var out domain.ApplyOutput
	if err := json.Unmarshal(decode(t, rec).Data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Rows) != 1 || out.Total != 3 || !out.Truncated {
		t.Fatalf("rows=%d total=%d truncated=%v", len(out.Rows), out.Total, out.Truncated)
	}
}

func TestApply_BadInput(t *testing.T) {
	h := mount(t, &fakeSnap{t: employees()})
	for _, body := range []string{`{"limit":0.5}`, `{"nope":1}`, `{"year":1066}`, `{"roles":[" "]}`, `{"domain":`} {
		rec := do(t, h, http.MethodPost, "/dashboard/apply", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", body, rec.Code)
		}
	}
}

func TestDataUnavailable(t *testing.T) {
	h := mount(t, &fakeSnap{err: fmt.Errorf("%w: table missing", dsdomain.ErrDataUnavailable)})
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/dashboard/controls"},
		{http.MethodPost, "/dashboard/apply"},
		{http.MethodPost, "/dashboard/export"},
		{http.MethodPost, "/dashboard/reload"},
	} {
		rec := do(t, h, tc.method, tc.path, "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s %s: status %d", tc.method, tc.path, rec.Code)
		}
		if env := decode(t, rec); env.Code != "data_unavailable" {
			t.Fatalf("%s: code %q", tc.path, env.Code)
		}
	}
}

func TestExport(t *testing.T) {
	h := mount(t, &fakeSnap{t: employees()})
	rec := do(t, h, http.MethodPost, "/dashboard/export", `{"level":"Senior"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != export.ContentType {
		t.Fatalf("content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename="+export.FileName {
		t.Fatalf("disposition %q", got)
	}
	want := strings.Join(export.Header, ",") + "\n" +
		"Eng,Dev,Senior,Remote,2023,2500000,100000,High\n" +
		"Sales,Rep,Senior,Remote,2024,1200000,,Medium\n"
	if rec.Body.String() != want {
		t.Fatalf("csv\n%s\nwant\n%s", rec.Body, want)
	}
}

func TestCharts(t *testing.T) {
	h := mount(t, &fakeSnap{t: employees()})

	rec := do(t, h, http.MethodGet, "/dashboard/charts", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "domain_share") {
		t.Fatalf("list %d: %s", rec.Code, rec.Body)
	}

	rec = do(t, h, http.MethodPost, "/dashboard/charts/domain_share?format=svg", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("svg %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	rec = do(t, h, http.MethodPost, "/dashboard/charts/salary_histogram", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Fatalf("png %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/dashboard/charts/domain_share?format=gif", "")
	if env := decode(t, rec); rec.Code != http.StatusBadRequest || env.Field != "format" {
		t.Fatalf("bad format %d %+v", rec.Code, env)
	}
	if rec = do(t, h, http.MethodPost, "/dashboard/charts/radar", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown chart %d", rec.Code)
	}
	if rec = do(t, h, http.MethodPost, "/dashboard/charts/domain_share", `{"roles":[]}`); rec.Code != http.StatusNotFound {
		t.Fatalf("empty chart %d", rec.Code)
	}
}

func TestReload(t *testing.T) {
	h := mount(t, &fakeSnap{t: employees()})
	rec := do(t, h, http.MethodPost, "/dashboard/reload", "")
	var out domain.ReloadOutput
	if err := json.Unmarshal(decode(t, rec).Data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Report.Loaded != 3 || out.Report.Source != "pg" {
		t.Fatalf("report %+v", out.Report)
	}
}
