// Package api provides the HTTP API for the application
package api

import (
	"payscope/internal/platform/config"
	"payscope/internal/platform/logger"
	"payscope/internal/platform/net/middleware"
	phttp "payscope/internal/platform/net/http"
	"payscope/internal/platform/store"

	"payscope/internal/modkit"
	"payscope/internal/modkit/httpkit"
	"payscope/internal/modkit/module"
	"payscope/internal/modkit/swaggerkit"

	dashmod "payscope/internal/services/api/dashboard/module"
	metamod "payscope/internal/services/api/meta/module"
	dsmod "payscope/internal/services/dataset/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mounted is what the binary needs after mounting, such as the snapshot to warm
type Mounted struct {
	Dataset dsmod.Ports
	Modules []module.Module
}

// Mount builds every module and mounts the API onto r
func Mount(r phttp.Router, opt Options) (Mounted, error) {
	deps := modkit.FromStore(opt.Config, opt.Store)
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// the dataset module owns the snapshot the dashboard reads
	dataset, err := dsmod.New(deps, dsmod.FromConfig(deps.Cfg))
	if err != nil {
		return Mounted{}, err
	}
	ds := module.MustPortsOf[dsmod.Ports](dataset)

	mods := []module.Module{
		dataset,
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Dataset: ds.Snapshot})),
		dashmod.New(deps, modkit.WithPorts(dashmod.Ports{
			Snapshot: ds.Snapshot,
			Options:  ds.Profile.Options(),
		})),
	}

	r.Use(middleware.Heartbeat("/health"))
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackFromConfig(deps.Cfg.Prefix("CORE_")))
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// ports by name for cross-module lookups such as the CLI
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	return Mounted{Dataset: ds, Modules: mods}, nil
}
