// Package service turns raw source rows into the dashboard table
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"payscope/internal/core/label"
	"payscope/internal/core/pipeline"
	"payscope/internal/core/salary"
	"payscope/internal/platform/logger"
	"payscope/internal/services/dataset/domain"
)

// Loader reads and normalizes the dataset; it never writes
type Loader struct {
	Source  domain.Source
	Name    string // source kind for reports, pg or ch
	Profile domain.Profile
	Now     func() time.Time
}

// NewLoader constructs a Loader
func NewLoader(src domain.Source, name string, p domain.Profile) *Loader {
	return &Loader{Source: src, Name: name, Profile: p, Now: time.Now}
}

// Load fetches every row, converts salaries to rupees and drops rows with
// no usable salary; an unreachable store, a missing table and an empty
// result all come back as domain.ErrDataUnavailable
func (l *Loader) Load(ctx context.Context) (pipeline.Table, domain.LoadReport, error) {
	start := l.Now()
	spec := l.Profile.Columns
	rep := domain.LoadReport{Source: l.Name, Table: spec.Table, Profile: l.Profile.Name, LoadedAt: start}

	raw, err := l.Source.Fetch(ctx, spec)
	if err != nil {
		if ctx.Err() != nil {
			return pipeline.Table{}, rep, ctx.Err()
		}
		if !errors.Is(err, domain.ErrDataUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
		}
		return pipeline.Table{}, rep, err
	}
	rep.Fetched = len(raw)

	rows, stats := Normalize(raw, spec, l.Profile.Rates())
	rep.Loaded = len(rows)
	rep.Dropped = stats.Dropped
	rep.FromFallback = stats.FromFallback
	rep.BadBonus = stats.BadBonus
	rep.BadYear = stats.BadYear
	rep.Took = l.Now().Sub(start)

	log := logger.C(ctx)
	if rep.Dropped > 0 {
		log.Warn().Int("dropped", rep.Dropped).Int("fetched", rep.Fetched).Str("table", spec.Table).Msg("dataset: rows without a usable salary")
	}
	if len(rows) == 0 {
		return pipeline.Table{}, rep, fmt.Errorf("%w: no usable rows in %s (%d fetched)", domain.ErrDataUnavailable, spec.Table, rep.Fetched)
	}
	log.Info().Int("rows", rep.Loaded).Int("from_fallback", rep.FromFallback).Dur("took", rep.Took).Msg("dataset: loaded")
	return pipeline.NewTable(rows), rep, nil
}

// NormalizeStats counts what Normalize absorbed
type NormalizeStats struct {
	Dropped      int
	FromFallback int
	BadBonus     int
	BadYear      int
}

// Normalize converts raw rows; a row is dropped only when neither salary column
// yields a number, a bad year or bonus only clears that field
func Normalize(raw []domain.RawRow, spec domain.ColumnSpec, rates salary.Rates) ([]pipeline.Record, NormalizeStats) {
	var st NormalizeStats
	out := make([]pipeline.Record, 0, len(raw))
	for _, r := range raw {
		sal, fromFallback, ok := rowSalary(r, spec, rates)
		if !ok {
			st.Dropped++
			continue
		}
		year, ok := parseYear(r.Year)
		if !ok {
			st.BadYear++
		}
		if fromFallback {
			st.FromFallback++
		}

		rec := pipeline.Record{
			Domain: label.Normalize(r.Domain),
			Role:   label.Normalize(r.Role),
			Level:  label.Normalize(r.Level),
			Mode:   label.Normalize(r.Mode),
			Year:   year,
			Salary: sal,
		}
		if strings.TrimSpace(r.Bonus) != "" {
			if b, err := salary.ParseCanonical(r.Bonus, spec.BonusUnit, rates); err == nil {
				rec.Bonus = &b
			} else {
				st.BadBonus++
			}
		}
		out = append(out, rec)
	}
	return out, st
}

func rowSalary(r domain.RawRow, spec domain.ColumnSpec, rates salary.Rates) (float64, bool, bool) {
	if v, err := salary.ParseCanonical(r.Salary, spec.SalaryUnit, rates); err == nil {
		return v, false, true
	}
	if spec.Fallback == "" {
		return 0, false, false
	}
	if v, err := salary.ParseCanonical(r.Fallback, spec.FallbackUnit, rates); err == nil {
		return v, true, true
	}
	return 0, false, false
}

// parseYear accepts "2023" and the float rendering "2023.0" some exports produce
// zero is rejected since it marks a missing year
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, n != pipeline.NoYear
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1e6 || f == 0 {
		return pipeline.NoYear, false
	}
	return int(f), true
}
