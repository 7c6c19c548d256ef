// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Manager struct {
	registry  *prometheus.Registry
	collector *TorrentCollector
}

func NewManager(source SnapshotSource) *Manager {
	registry := prometheus.NewRegistry()

	collector := NewTorrentCollector(source)
	registry.MustRegister(collector)

	log.Info().Msg("Metrics manager initialized with torrent collector")

	return &Manager{
		registry:  registry,
		collector: collector,
	}
}

func (m *Manager) GetRegistry() *prometheus.Registry {
	return m.registry
}

// Handler builds the exporter's HTTP routes: /metrics in OpenMetrics
// format and a trivial /healthz.
func (m *Manager) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(
		m.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// Serve runs the exporter until ctx is cancelled. The exporter is
// optional and its failure must never take the UI down, so errors are
// logged, not returned.
func (m *Manager) Serve(ctx context.Context, addr string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: m.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("Starting metrics exporter")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("Metrics exporter stopped")
	}
}
