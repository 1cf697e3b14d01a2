// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"payscope/internal/modkit"
	"payscope/internal/modkit/httpkit"

	metahttp "payscope/internal/services/api/meta/http"
)

// ServiceName is reported by the health and service endpoints
const ServiceName = "payscope-api"

// Ports are optional: without a dataset reporter the ready check skips it
type Ports struct {
	Dataset metahttp.Reporter
}

// Module implements the modkit.Module interface
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	deps   metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	injected, _ := modkit.PortsAs[Ports](b)

	hd := metahttp.Deps{
		ServiceName: ServiceName,
		StartedAt:   time.Now(),
		Dataset:     injected.Dataset,
	}
	// typed nils would defeat the skipped check
	if deps.PG != nil {
		hd.PG = deps.PG
	}
	if deps.CH != nil {
		hd.CH = deps.CH
	}

	return &Module{name: b.Name, prefix: b.Prefix, mws: b.Mw, deps: hd}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		metahttp.Register(rr, m.deps)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
