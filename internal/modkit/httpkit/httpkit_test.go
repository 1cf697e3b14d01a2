package httpkit_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payscope/internal/modkit/httpkit"
	"payscope/internal/platform/config"
	phttp "payscope/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func newAPI(t *testing.T, mount func(httpkit.Router)) http.Handler {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackOptions{SlowRequest: time.Second}), func(api httpkit.Router) {
		httpkit.MountUnder(api, "things/", nil, mount)
	})
	return r.Mux()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSugar(t *testing.T) {
	h := newAPI(t, func(r httpkit.Router) {
		httpkit.Get(r, "/one", func(*http.Request) (any, error) { return 1, nil })
		httpkit.Post(r, "/fail", func(*http.Request) (any, error) { return nil, errors.New("nope") })
		httpkit.Get(r, "/raw", func(*http.Request) (any, error) { return httpkit.Bytes("text/plain", []byte("raw")), nil })
		httpkit.PostJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) { return in.Name, nil })
		httpkit.PostBind(r, "/file", func(_ *http.Request, in echoIn) httpkit.Response {
			return httpkit.Attachment("text/csv", in.Name+".csv", []byte("x\n"))
		})
	})

	rec := do(h, http.MethodGet, "/api/v1/things/one", "")
	var env httpkit.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if rec.Code != 200 || env.Data != float64(1) || env.RequestID == "" {
		t.Fatalf("get: %d %+v", rec.Code, env)
	}

	if rec := do(h, http.MethodPost, "/api/v1/things/fail", ""); rec.Code != 500 {
		t.Fatalf("fail: %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/api/v1/things/raw", ""); rec.Body.String() != "raw" {
		t.Fatalf("raw: %q", rec.Body.String())
	}
	if rec := do(h, http.MethodPost, "/api/v1/things/echo", `{"name":"ana"}`); !strings.Contains(rec.Body.String(), `"data":"ana"`) {
		t.Fatalf("echo: %s", rec.Body.String())
	}
	if rec := do(h, http.MethodPost, "/api/v1/things/echo", `{}`); rec.Code != 400 {
		t.Fatalf("echo validation: %d", rec.Code)
	}
	rec = do(h, http.MethodPost, "/api/v1/things/file", `{"name":"out"}`)
	if rec.Header().Get("Content-Disposition") != "attachment; filename=out.csv" || rec.Body.String() != "x\n" {
		t.Fatalf("file: %v %q", rec.Header(), rec.Body.String())
	}
}

func TestStackFromConfig(t *testing.T) {
	t.Setenv("CORE_API_SLOW_REQUEST", "2s")
	t.Setenv("CORE_API_CORS_ORIGINS", "http://a, http://b")
	o := httpkit.StackFromConfig(config.New().Prefix("CORE_"))
	if o.SlowRequest != 2*time.Second || o.RequestTimeout != 30*time.Second || len(o.CORSOrigins) != 2 {
		t.Fatalf("options %+v", o)
	}
}
