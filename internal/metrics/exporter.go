package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/pkg/logger"
)

// Exporter handles the HTTP server for Prometheus metrics
type Exporter struct {
	collector *Collector
	logger    *logger.Logger
	server    *http.Server
	port      int
	path      string
}

// NewExporter creates a new Prometheus exporter
func NewExporter(collector *Collector, port int, path string, logger *logger.Logger) *Exporter {
	if path == "" {
		path = "/metrics"
	}
	if port == 0 {
		port = 9090
	}

	return &Exporter{
		collector: collector,
		logger:    logger,
		port:      port,
		path:      path,
	}
}

// Start starts the Prometheus HTTP server
func (e *Exporter) Start() error {
	mux := http.NewServeMux()

	handler := promhttp.HandlerFor(
		e.collector.Registry(),
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			Timeout:           10 * time.Second,
			ErrorLog:          e.logger.StdLogger(),
		},
	)
	mux.Handle(e.path, handler)

	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	}
	mux.HandleFunc("/health", ok)
	mux.HandleFunc("/ready", ok)

	e.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", e.port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		e.logger.Info("starting Prometheus exporter",
			zap.Int("port", e.port),
			zap.String("path", e.path))

		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			e.logger.Error("Prometheus exporter error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the Prometheus HTTP server
func (e *Exporter) Stop() error {
	if e.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.server.Shutdown(ctx); err != nil {
		e.logger.Error("failed to shut down Prometheus exporter gracefully", zap.Error(err))
		return err
	}

	e.logger.Info("Prometheus exporter stopped")
	return nil
}
