// Package service runs dashboard requests against the dataset snapshot
package service

import (
	"bytes"
	"context"
	"errors"

	"payscope/internal/core/chart"
	"payscope/internal/core/export"
	"payscope/internal/core/pipeline"
	perr "payscope/internal/platform/errors"
	"payscope/internal/platform/logger"
	"payscope/internal/services/api/dashboard/domain"
	dsdomain "payscope/internal/services/dataset/domain"
)

// DefaultLimit caps the rows returned by Apply when the client sends none
const DefaultLimit = 500

// Service is the dashboard use case surface
type Service interface {
	Controls(ctx context.Context) (domain.ControlsOutput, error)
	Apply(ctx context.Context, in domain.ApplyInput) (domain.ApplyOutput, error)
	Export(ctx context.Context, in domain.CriteriaInput) ([]byte, error)
	Chart(ctx context.Context, name string, f chart.Format, in domain.CriteriaInput) ([]byte, error)
	Reload(ctx context.Context) (domain.ReloadOutput, error)
}

type service struct {
	snap dsdomain.SnapshotPort
	opts pipeline.Options
}

// New constructs the dashboard service
func New(snap dsdomain.SnapshotPort, opts pipeline.Options) Service {
	return &service{snap: snap, opts: opts}
}

func (s *service) table(ctx context.Context) (pipeline.Table, error) {
	t, err := s.snap.Table(ctx)
	if err != nil {
		return pipeline.Table{}, mapErr(err)
	}
	return t, nil
}

func (s *service) run(ctx context.Context, in domain.CriteriaInput) (pipeline.Table, pipeline.Summary, error) {
	t, err := s.table(ctx)
	if err != nil {
		return pipeline.Table{}, pipeline.Summary{}, err
	}
	c := in.Criteria()
	if err := pipeline.Validate(c, s.opts); err != nil {
		return pipeline.Table{}, pipeline.Summary{}, perr.Wrapf(err, perr.ErrorCodeValidation, "invalid criteria")
	}
	sub, sum := pipeline.Apply(t, c, s.opts)
	return sub, sum, nil
}

// Controls implements Service
func (s *service) Controls(ctx context.Context) (domain.ControlsOutput, error) {
	t, err := s.table(ctx)
	if err != nil {
		return domain.ControlsOutput{}, err
	}
	return domain.ControlsOutput{
		Options:  pipeline.ControlsFor(t),
		Defaults: domain.InputFrom(pipeline.Defaults(t)),
		Buckets:  buckets(s.opts),
	}, nil
}

// Apply implements Service
func (s *service) Apply(ctx context.Context, in domain.ApplyInput) (domain.ApplyOutput, error) {
	sub, sum, err := s.run(ctx, in.CriteriaInput)
	if err != nil {
		return domain.ApplyOutput{}, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows := sub.Head(limit)
	return domain.ApplyOutput{
		Summary:   sum,
		Rows:      rows,
		Total:     sub.Len(),
		Truncated: len(rows) < sub.Len(),
	}, nil
}

// Export implements Service
func (s *service) Export(ctx context.Context, in domain.CriteriaInput) ([]byte, error) {
	sub, _, err := s.run(ctx, in)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, sub, buckets(s.opts)); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "export failed")
	}
	logger.C(ctx).Debug().Int("rows", sub.Len()).Int("bytes", buf.Len()).Msg("dashboard: export")
	return buf.Bytes(), nil
}

// Chart implements Service
func (s *service) Chart(ctx context.Context, name string, f chart.Format, in domain.CriteriaInput) ([]byte, error) {
	_, sum, err := s.run(ctx, in)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := chart.Render(name, sum, f, &buf); err != nil {
		return nil, mapErr(err)
	}
	return buf.Bytes(), nil
}

// Reload implements Service
func (s *service) Reload(ctx context.Context) (domain.ReloadOutput, error) {
	rep, err := s.snap.Reload(ctx)
	if err != nil {
		return domain.ReloadOutput{}, mapErr(err)
	}
	return domain.ReloadOutput{Report: rep}, nil
}

func buckets(o pipeline.Options) pipeline.Buckets {
	if len(o.Buckets) == 0 {
		return pipeline.DefaultBuckets()
	}
	return o.Buckets.Sorted()
}

// mapErr gives domain errors their transport codes
func mapErr(err error) error {
	switch {
	case errors.Is(err, dsdomain.ErrDataUnavailable):
		return perr.Wrapf(err, perr.ErrorCodeDataUnavailable, "dataset unavailable")
	case errors.Is(err, chart.ErrNothingToDraw):
		return perr.Wrapf(err, perr.ErrorCodeNotFound, "no data to chart")
	case errors.Is(err, chart.ErrUnknown):
		return perr.Wrapf(err, perr.ErrorCodeNotFound, "unknown chart")
	case errors.Is(err, context.DeadlineExceeded):
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "dataset load timed out")
	}
	return err
}
