package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/Bennylang23/autobeluga/internal/config"
	"github.com/Bennylang23/autobeluga/internal/platform/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DebugHandler serves /metrics, /healthz and the pprof endpoints.
func DebugHandler(metrics *Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

func StartDebugServer(cfg config.Config, metrics *Metrics, logger *logging.Logger) *http.Server {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.DebugServerEnabled {
		logger.Info("debug server disabled", "reason", "DEBUG_SERVER_ENABLED=false")
		return nil
	}

	srv := &http.Server{
		Addr:              cfg.DebugServerAddr,
		Handler:           DebugHandler(metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("debug server starting", "addr", cfg.DebugServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("debug server failed", "error", err)
		}
	}()

	return srv
}

func StopDebugServer(srv *http.Server, logger *logging.Logger, timeout time.Duration) error {
	if srv == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("debug server stopped")

	return nil
}
