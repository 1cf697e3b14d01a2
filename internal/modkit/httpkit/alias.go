// Package httpkit re-exports the platform http helpers modules need
// so feature packages do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "payscope/internal/platform/net/http"
	"payscope/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the return-style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router

	// JSONOptions controls body parsing
	JSONOptions = bind.JSONOptions
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Attachment returns raw bytes served as a named download
func Attachment(contentType, filename string, body []byte) Response {
	return phttp.Attachment(contentType, filename, body)
}

// Bytes returns raw bytes with a content type
func Bytes(contentType string, body []byte) Response { return phttp.Bytes(contentType, body) }

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Call adapts a body-less handler; a returned Response is passed through as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// PathParam returns the named path segment, e.g. {name} in /charts/{name}
func PathParam(r *http.Request, name string) string { return phttp.PathParam(r, name) }
