package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"payscope/internal/platform/config"
	"payscope/internal/platform/net/middleware"
)

// StackOptions tunes the shared API middleware stack
type StackOptions struct {
	SlowRequest    time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// StackFromConfig reads API_* keys from cfg, normally the CORE_ view
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		SlowRequest:    cfg.MayDuration("API_SLOW_REQUEST", 500*time.Millisecond),
		RequestTimeout: cfg.MayDuration("API_REQUEST_TIMEOUT", 30*time.Second),
		CORSOrigins:    cfg.MayCSV("API_CORS_ORIGINS", nil),
	}
}

// CommonStack is the middleware every API route runs through, in order
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(o.RequestTimeout),
	}
}
