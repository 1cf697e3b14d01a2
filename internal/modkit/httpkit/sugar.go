package httpkit

import (
	"net/http"

	phttp "payscope/internal/platform/net/http"
)

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post mounts a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostJSON mounts a validated JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...JSONOptions) {
	r.Post(path, phttp.JSONHandler(h, opts...))
}

// PostBind mounts a validated JSON handler that builds its own Response, e.g. downloads
func PostBind[T any](r Router, path string, h func(*http.Request, T) Response, opts ...JSONOptions) {
	r.Post(path, phttp.BindHandler(h, opts...))
}
