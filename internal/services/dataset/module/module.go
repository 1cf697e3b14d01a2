// Package module wires the dataset loader and exposes its snapshot
package module

import (
	"errors"

	"payscope/internal/modkit"
	"payscope/internal/modkit/httpkit"
	"payscope/internal/services/dataset/domain"
	"payscope/internal/services/dataset/repo"
	"payscope/internal/services/dataset/service"
)

// Ports exposed by the dataset module
type Ports struct {
	Snapshot domain.SnapshotPort
	Profile  domain.Profile
}

// Module owns the dataset snapshot; it mounts no routes
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New builds the module; the source is chosen by opts.Source
func New(deps modkit.Deps, opts Options) (*Module, error) {
	p, err := opts.ResolveProfile()
	if err != nil {
		return nil, err
	}

	var src domain.Source
	switch opts.Source {
	case "ch":
		if deps.CH == nil {
			return nil, errors.New("dataset: source ch needs SERVICE_CLICKHOUSE_DBURL")
		}
		src = repo.NewCH(deps.CH)
	default:
		if deps.PG == nil {
			return nil, errors.New("dataset: source pg needs SERVICE_PGSQL_DBURL")
		}
		opts.Source = "pg"
		src = repo.NewPG(deps.PG, opts.StatementTimeoutMs)
	}

	snap := service.NewSnapshot(service.NewLoader(src, opts.Source, p))
	return &Module{
		deps:  deps,
		opts:  opts,
		ports: Ports{Snapshot: snap, Profile: p},
	}, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "dataset" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
