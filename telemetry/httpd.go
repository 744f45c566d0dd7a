//
// (C) Copyright 2021-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gregsfortytwo/ceph-qa-suite/logging"
)

// StartExporter serves the metrics over HTTP on the given port until the
// returned cleanup function is called.
func StartExporter(ctx context.Context, log logging.Logger, port int, m *Metrics) (func(), error) {
	if port <= 0 {
		return nil, errors.New("invalid exporter config: bad port")
	}
	if m == nil {
		return nil, errors.New("invalid exporter config: nil metrics")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Gatherer(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Debugf("metrics exporter listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics exporter failed: %s", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Debugf("metrics exporter shutdown: %s", err)
		}
	}, nil
}
