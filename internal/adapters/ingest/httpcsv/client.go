// Package httpcsv downloads the bootstrap CSV with retries on transient failures
package httpcsv

import (
	"context"
	"io"
	"net/http"
	"time"

	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/logger"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUA        = "payscope-seed"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	defaultMaxBytes  = 64 << 20
)

// Options configures the Client
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int // 0 means the default, negative disables retries
	RetryBase  time.Duration
	MaxBytes   int64 // body cap, larger downloads fail
}

// Client fetches CSV documents over HTTP
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewClient creates a Client with defaults for unset options
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaultMaxBytes
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("httpcsv"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Get downloads url and returns the whole body
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, retry, err := c.once(ctx, url, attempt)
		if err == nil {
			return body, nil
		}
		if !retry || attempt >= c.opts.MaxRetries {
			return nil, err
		}
		back := c.backoff(attempt)
		c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempt).Msg("csv download retrying")
		if err := c.sleep(ctx, back); err != nil {
			return nil, err
		}
	}
}

func (c *Client) once(ctx context.Context, url string, attempt int) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad bootstrap url %q", url)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, perr.Wrapf(err, perr.ErrorCodeUnavailable, "csv download failed")
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", c.now().Sub(start)).
		Msg("csv http response")

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, true, perr.Newf(perr.ErrorCodeUnavailable, "csv download status %d", resp.StatusCode)
	default:
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, perr.Newf(perr.ErrorCodeUnknown, "csv download status %d body %s", resp.StatusCode, tail)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBytes+1))
	if err != nil {
		return nil, true, perr.Wrapf(err, perr.ErrorCodeUnavailable, "csv download read failed")
	}
	if int64(len(body)) > c.opts.MaxBytes {
		return nil, false, perr.InvalidArgf("csv larger than %d bytes", c.opts.MaxBytes)
	}
	return body, false, nil
}

// backoff doubles RetryBase per attempt, capped at 30s
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > 30*time.Second {
		return 30 * time.Second
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

