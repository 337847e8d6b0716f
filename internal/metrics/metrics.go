// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics exposes Prometheus counters and gauges tracking this
// resolver's decisions, in the style of the teacher's
// cmd/metrics/metrics_server.go: a package-level registry, a serve
// helper wrapping promhttp.Handler, and small update functions the
// rest of the module calls after each operation.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "cpuarbiter_"

// ComputeOutcomes counts compare/guestData invocations by their
// outcome label (equal/superset/unrelated, as CompareResult.String
// renders them, or error).
var ComputeOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: metricPrefix + "compute_outcomes_total",
		Help: "Count of compute/compare outcomes by result.",
	},
	[]string{"result"},
)

// DecodeOutcomes counts decode invocations by whether a model was found.
var DecodeOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: metricPrefix + "decode_outcomes_total",
		Help: "Count of decode invocations by outcome.",
	},
	[]string{"result"},
)

// BaselineOutcomes counts baseline invocations by outcome.
var BaselineOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: metricPrefix + "baseline_outcomes_total",
		Help: "Count of baseline invocations by outcome.",
	},
	[]string{"result"},
)

// CatalogSize gauges the number of loaded vendors/features/models, one
// gauge per collection, updated whenever a catalog finishes loading.
var CatalogSize = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: metricPrefix + "catalog_size",
		Help: "Number of entries loaded into the catalog, by collection.",
	},
	[]string{"collection"},
)

func init() {
	prometheus.MustRegister(ComputeOutcomes, DecodeOutcomes, BaselineOutcomes, CatalogSize)
}

// RecordCatalogSize updates the catalog_size gauge for the three
// collections.
func RecordCatalogSize(vendors, features, models int) {
	CatalogSize.WithLabelValues("vendors").Set(float64(vendors))
	CatalogSize.WithLabelValues("features").Set(float64(features))
	CatalogSize.WithLabelValues("models").Set(float64(models))
}

// Serve starts an HTTP server exposing /metrics via promhttp.Handler
// and blocks until ctx is canceled, then shuts the server down
// gracefully (mirrors the teacher's startPrometheusServer, made
// synchronous and context-aware for the CLI's serve subcommand).
func Serve(ctx context.Context, listenAddr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting metrics server", slog.String("address", listenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
