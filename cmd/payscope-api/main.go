// @title         Payscope API
// @version       0.1.0
// @description   Employee compensation dashboard: filters, summaries, charts and CSV export

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payscope/internal/modkit"
	"payscope/internal/modkit/repokit"
	"payscope/internal/platform/config"
	"payscope/internal/platform/logger"
	phttp "payscope/internal/platform/net/http"
	"payscope/internal/platform/store"

	"payscope/internal/services/api"
	seedmod "payscope/internal/services/seed/module"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine; the environment wins over the file
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	logger.Init(logger.FromEnv())
	l := logger.Named("api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromEnv(root, "api"), store.WithLogger(*logger.Get()))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a configured backend is unreachable
	repokit.MustGuard(ctx, st)

	seedOnStart(ctx, root, st)

	// http server (reads CORE_API_PORT and the timeouts)
	srv := phttp.NewServer(apiCfg)

	mounted, err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("api.Mount failed")
	}

	// warm the snapshot; a failure is served as data_unavailable and retried per request
	warm, cancel := context.WithTimeout(ctx, apiCfg.MayDuration("WARM_TIMEOUT", 30*time.Second))
	if _, err := mounted.Dataset.Snapshot.Table(warm); err != nil {
		l.Warn().Err(err).Msg("dataset not loaded at startup")
	}
	cancel()

	l.Info().Str("addr", srv.Addr()).Msg("listening")
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}

// seedOnStart runs the bootstrap when CORE_SEED_ON_START is set and a URL is configured
func seedOnStart(ctx context.Context, root config.Conf, st *store.Store) {
	opts := seedmod.FromConfig(root)
	if !opts.OnStart || opts.URL == "" {
		return
	}
	l := logger.Named("seed")
	m, err := seedmod.New(modkit.FromStore(root, st), opts)
	if err != nil {
		l.Error().Err(err).Msg("seed module")
		return
	}
	rep, err := m.Seed(ctx)
	if err != nil {
		l.Error().Err(err).Msg("seed failed, serving whatever the table holds")
		return
	}
	l.Info().Int("written", rep.Written).Bool("skipped", rep.Skipped).Msg("seed done")
}
