package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payscope/internal/platform/config"
	perr "payscope/internal/platform/errors"
	pnet "payscope/internal/platform/net"
	phttp "payscope/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) { goleak.VerifyTestMain(m) }

func withReqID(r *http.Request, id string) *http.Request {
	return r.WithContext(pnet.WithRequestID(r.Context(), id))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestAdaptChi_GroupsAndRoutes(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Get("/root", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "root") })
	r.Route("/api", func(sr phttp.Router) {
		sr.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("X-Sub", "1")
				next.ServeHTTP(w, req)
			})
		})
		sr.Group(func(g phttp.Router) {
			g.Post("/echo", func(w http.ResponseWriter, req *http.Request) { _, _ = io.Copy(w, req.Body) })
		})
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/root", nil))
	if rec.Body.String() != "root" || rec.Header().Get("X-Sub") != "" {
		t.Fatalf("root: %q %v", rec.Body.String(), rec.Header())
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader("hi")))
	if rec.Body.String() != "hi" || rec.Header().Get("X-Sub") != "1" {
		t.Fatalf("sub: %q %v", rec.Body.String(), rec.Header())
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/echo", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("method guard: %d", rec.Code)
	}
}

func TestPathParam(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Post("/charts/{name}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, phttp.PathParam(req, "name"))
	})
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/charts/domain_share", nil))
	if rec.Body.String() != "domain_share" {
		t.Fatalf("param %q", rec.Body.String())
	}
}

func TestHandle_Envelopes(t *testing.T) {
	ok := phttp.Handle(func(*http.Request) phttp.Response { return phttp.OK(map[string]int{"n": 1}) })
	rec := httptest.NewRecorder()
	ok(rec, withReqID(httptest.NewRequest(http.MethodGet, "/", nil), "rid-1"))
	env := decode(t, rec)
	if env.StatusCode != 200 || env.RequestID != "rid-1" || env.Code != "" {
		t.Fatalf("ok envelope %+v", env)
	}

	bad := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Error(perr.WithField(perr.Validationf("salary_min must be at least 0"), "salary_min"))
	})
	rec = httptest.NewRecorder()
	bad(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	env = decode(t, rec)
	if rec.Code != http.StatusBadRequest || env.Code != "validation" || env.Field != "salary_min" {
		t.Fatalf("error envelope %d %+v", rec.Code, env)
	}

	unavailable := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Error(perr.Newf(perr.ErrorCodeDataUnavailable, "table missing"))
	})
	rec = httptest.NewRecorder()
	unavailable(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable || decode(t, rec).Code != "data_unavailable" {
		t.Fatalf("unavailable: %d %s", rec.Code, rec.Body.String())
	}

	foreign := phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(errors.New("x")) })
	rec = httptest.NewRecorder()
	foreign(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("foreign: %d", rec.Code)
	}

	none := phttp.Handle(func(*http.Request) phttp.Response { return phttp.NoContent() })
	rec = httptest.NewRecorder()
	none(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAttachment(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Attachment("text/csv; charset=utf-8", "filtered_employees.csv", []byte("a,b\n"))
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Body.String() != "a,b\n" {
		t.Fatalf("body %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=filtered_employees.csv" {
		t.Fatalf("disposition %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Fatalf("content type %q", got)
	}
}

func TestJSONHandler(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required"`
	}
	h := phttp.JSONHandler(func(_ *http.Request, v in) (any, error) {
		return "hi " + v.Name, nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ana"}`)))
	if env := decode(t, rec); env.Data != "hi ana" {
		t.Fatalf("data %#v", env.Data)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("validation status %d", rec.Code)
	}

	nb := phttp.JSONHandlerNoBody(func(*http.Request) (any, error) { return nil, perr.ErrNotFound })
	rec = httptest.NewRecorder()
	nb(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("not found status %d", rec.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(r, "/debug", false)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler answered %d", rec.Code)
	}

	r = phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(r, "/debug", true)
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("profiler index %d", rec.Code)
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	srv := phttp.NewServer(config.New(), func(m *chi.Mux) {
		m.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })
	})
	if srv.Addr() != ":4000" {
		t.Fatalf("default addr %q", srv.Addr())
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		cancel()
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	client.CloseIdleConnections()
	if string(body) != "pong" {
		t.Fatalf("body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
