// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

// Command server runs the tap-tracking API: it records NFC tap
// events, aggregates per-object journeys, and serves follow and
// profile writes, all persisted through a PostgREST event store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shane-Breen/wheres-my-lighter/internal/api"
	"github.com/Shane-Breen/wheres-my-lighter/internal/config"
	"github.com/Shane-Breen/wheres-my-lighter/internal/geocode"
	"github.com/Shane-Breen/wheres-my-lighter/internal/logging"
	"github.com/Shane-Breen/wheres-my-lighter/internal/store"
	"github.com/Shane-Breen/wheres-my-lighter/internal/supervisor"
	"github.com/Shane-Breen/wheres-my-lighter/internal/supervisor/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config errors log through the default logger since the
		// configured one is not available yet.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("store_url", cfg.Store.URL).
		Bool("geocode_enabled", cfg.Geocode.Enabled).
		Msg("configuration loaded")

	st := store.NewClient(cfg.Store)

	var geocoder api.Geocoder
	if cfg.Geocode.Enabled {
		provider := geocode.NewNominatimProvider(
			cfg.Geocode.BaseURL,
			cfg.Geocode.UserAgent,
			cfg.Geocode.Timeout,
		)
		geocoder = geocode.NewResolver(provider, cfg.Geocode)
		logging.Info().
			Str("provider", provider.Name()).
			Float64("snap_step", cfg.Geocode.SnapStep).
			Msg("reverse geocoding enabled")
	} else {
		logging.Info().Msg("reverse geocoding disabled, taps will carry raw coordinates only")
	}

	server := api.NewServer(st, geocoder, cfg, version)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", httpServer.Addr).Msg("http server added to supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
	}

	logging.Info().Msg("stopped gracefully")
}
