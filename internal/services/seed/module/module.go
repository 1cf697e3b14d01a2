// Package module wires the bootstrap seeder
package module

import (
	"context"
	"errors"

	"payscope/internal/adapters/ingest/httpcsv"
	"payscope/internal/modkit"
	"payscope/internal/modkit/httpkit"
	"payscope/internal/services/seed/domain"
	"payscope/internal/services/seed/repo"
	"payscope/internal/services/seed/service"
)

// Ports exposed by the seed module
type Ports struct {
	Seeder Seeder
}

// Seeder runs the configured bootstrap
type Seeder interface {
	Seed(ctx context.Context) (domain.Report, error)
}

// Module owns the seeder; it mounts no routes
type Module struct {
	opts  Options
	svc   *service.Service
	ports Ports
}

// New builds the module for opts.Target
func New(deps modkit.Deps, opts Options) (*Module, error) {
	if _, err := domain.ParseMode(opts.Mode); err != nil {
		return nil, err
	}

	var w domain.Writer
	switch opts.Target {
	case "ch":
		if deps.CH == nil {
			return nil, errors.New("seed: target ch needs SERVICE_CLICKHOUSE_DBURL")
		}
		w = repo.NewCH(deps.CH)
	default:
		if deps.PG == nil {
			return nil, errors.New("seed: target pg needs SERVICE_PGSQL_DBURL")
		}
		opts.Target = "pg"
		w = repo.NewPG(deps.PG)
	}

	retries := opts.Retries
	if retries == 0 {
		retries = -1
	}
	fetch := httpcsv.NewClient(httpcsv.Options{Timeout: opts.Timeout, MaxRetries: retries})

	m := &Module{opts: opts, svc: service.New(fetch, w, opts.Target)}
	m.ports = Ports{Seeder: m}
	return m, nil
}

// Seed runs the bootstrap with the configured url, table and mode
func (m *Module) Seed(ctx context.Context) (domain.Report, error) {
	mode, _ := domain.ParseMode(m.opts.Mode)
	return m.svc.Run(ctx, service.Request{URL: m.opts.URL, Table: m.opts.Table, Mode: mode})
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "seed" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
