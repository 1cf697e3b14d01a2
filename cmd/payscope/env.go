package main

import (
	"context"
	"fmt"

	"payscope/internal/modkit"
	"payscope/internal/modkit/module"
	"payscope/internal/platform/config"
	"payscope/internal/platform/logger"
	"payscope/internal/platform/store"

	dashmod "payscope/internal/services/api/dashboard/module"
	dashsvc "payscope/internal/services/api/dashboard/service"
	dsmod "payscope/internal/services/dataset/module"
)

// env is an opened store plus the module deps built on it
type env struct {
	root  config.Conf
	store *store.Store
	deps  modkit.Deps
}

func openEnv(ctx context.Context) (*env, error) {
	root := config.New()
	st, err := store.Open(ctx, store.FromEnv(root, "cli"), store.WithLogger(*logger.Get()))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &env{root: root, store: st, deps: modkit.FromStore(root, st)}, nil
}

func (e *env) Close() {
	if err := e.store.Close(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("failed to close store")
	}
}

// dashboard composes dataset and dashboard the same way the API does
func (e *env) dashboard() (dashsvc.Service, error) {
	ds, err := dsmod.New(e.deps, dsmod.FromConfig(e.root))
	if err != nil {
		return nil, err
	}
	ports := module.MustPortsOf[dsmod.Ports](ds)
	dm := dashmod.New(e.deps, modkit.WithPorts(dashmod.Ports{
		Snapshot: ports.Snapshot,
		Options:  ports.Profile.Options(),
	}))
	return module.MustPortsOf[dashsvc.Service](dm), nil
}
