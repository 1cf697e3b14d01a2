// Package service runs the bootstrap: download, parse, store
package service

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"payscope/internal/core/export"
	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/logger"
	"payscope/internal/services/seed/domain"

	"github.com/google/uuid"
)

// RequiredColumns must be in the bootstrap header
var RequiredColumns = []string{"domain", "role", "level", "mode", "year"}

// SalaryColumns are the accepted salary spellings; one must be present
var SalaryColumns = []string{"salary", "salary_in_usd", "salary_in_lakhs"}

// Request is one seeding run
type Request struct {
	URL   string
	Table string
	Mode  domain.Mode
}

// Service seeds a table from a remote CSV
type Service struct {
	fetch  domain.Fetcher
	write  domain.Writer
	target string
	now    func() time.Time
	newID  func() string
}

// New constructs a Service; target names the backend in reports
func New(f domain.Fetcher, w domain.Writer, target string) *Service {
	return &Service{fetch: f, write: w, target: target, now: time.Now, newID: uuid.NewString}
}

// Run seeds req.Table; running it again never duplicates rows
func (s *Service) Run(ctx context.Context, req Request) (domain.Report, error) {
	if req.Mode == "" {
		req.Mode = domain.ModeSkip
	}
	rep := domain.Report{
		RunID:   s.newID(),
		URL:     req.URL,
		Target:  s.target,
		Table:   req.Table,
		Mode:    req.Mode,
		Started: s.now(),
	}
	log := logger.C(ctx).With().Str("run_id", rep.RunID).Str("table", req.Table).Logger()

	if req.URL == "" {
		return rep, perr.Validationf("seed: no bootstrap url")
	}
	body, err := s.fetch.Get(ctx, req.URL)
	if err != nil {
		return rep, fmt.Errorf("seed: fetch: %w", err)
	}
	sheet, err := export.ReadSheet(bytes.NewReader(body))
	if err != nil {
		return rep, perr.Wrapf(err, perr.ErrorCodeValidation, "seed: parse")
	}
	if err := checkHeader(sheet.Header); err != nil {
		return rep, err
	}
	rep.Fetched = len(sheet.Rows)

	res, err := s.write.Write(ctx, req.Table, req.Mode, domain.Batch{Columns: sheet.Header, Rows: sheet.Rows})
	if err != nil {
		return rep, fmt.Errorf("seed: write: %w", err)
	}
	rep.Written, rep.Skipped = res.Written, res.Skipped
	rep.Took = s.now().Sub(rep.Started)

	ev := log.Info()
	if rep.Skipped {
		ev = ev.Bool("skipped", true)
	}
	ev.Int("fetched", rep.Fetched).Int("written", rep.Written).Str("mode", string(rep.Mode)).Dur("took", rep.Took).Msg("seed: done")
	return rep, nil
}

func checkHeader(h []string) error {
	for _, c := range RequiredColumns {
		if !slices.Contains(h, c) {
			return perr.WithField(perr.Validationf("seed: header lacks %q", c), c)
		}
	}
	for _, c := range SalaryColumns {
		if slices.Contains(h, c) {
			return nil
		}
	}
	return perr.Validationf("seed: header has no salary column (want one of %v)", SalaryColumns)
}
