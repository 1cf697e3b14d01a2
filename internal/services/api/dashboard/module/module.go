// Package module wires the dashboard into the API using modkit
package module

import (
	"net/http"

	"payscope/internal/core/pipeline"
	"payscope/internal/modkit"
	"payscope/internal/modkit/httpkit"

	dhttp "payscope/internal/services/api/dashboard/http"
	dsvc "payscope/internal/services/api/dashboard/service"
	dsdomain "payscope/internal/services/dataset/domain"
)

// Ports declares what the dashboard needs from the dataset module
type Ports struct {
	Snapshot dsdomain.SnapshotPort
	Options  pipeline.Options
}

// Module implements the dashboard API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	svc dsvc.Service
}

// New constructs the dashboard module; the snapshot port must be injected
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("dashboard"),
		modkit.WithPrefix("/dashboard"),
	}, opts...)...)

	injected, _ := modkit.PortsAs[Ports](b)
	if injected.Snapshot == nil {
		panic("dashboard module requires the Snapshot port (from services/dataset)")
	}

	return &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    dsvc.New(injected.Snapshot, injected.Options),
	}
}

// MountRoutes mounts the module routes under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		dhttp.Register(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports exposes the service for in-process callers such as the CLI
func (m *Module) Ports() any { return m.svc }
