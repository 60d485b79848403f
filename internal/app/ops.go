package app

import (
	"context"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"minihttpd/pkg/sensor"
	"minihttpd/pkg/telemetry"
)

// The ops endpoint is a plain net/http sidecar listener for operational
// concerns only: health, readiness, metrics and API docs. The data plane
// never goes through it.

// setupOpsHandlers sets up all ops handlers on the provided mux.
func (a *App) setupOpsHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", healthzHandler)
	mux.HandleFunc("/readyz", a.readyzHandler)
	mux.Handle("/metrics", telemetry.Handler())
	mux.Handle("/docs/", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))
	mux.Handle("/openapi.yaml", http.FileServer(http.Dir("./docs")))
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{\"status\":\"ok\"}"))
}

// readyzHandler reports readiness: the user store must answer and the data
// disk must not be full.
func (a *App) readyzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, ok := a.users.FindByAccount(adminFixture.Account); !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("{\"status\":\"store not ready\"}"))
		return
	}
	if ds, err := sensor.Disk(a.eff.DBPath); err == nil && ds.TotalBytes > 0 && ds.FreeBytes == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("{\"status\":\"disk full\"}"))
		return
	}
	ver := a.version
	if ver == "" {
		ver = "dev"
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{\"status\":\"ok\",\"version\":\"" + ver + "\"}"))
}

// startOps starts the ops HTTP server when enabled and returns a channel
// carrying any fatal server error.
func (a *App) startOps(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	if a.eff.Config == nil || !a.eff.Config.Ops.Enabled {
		return errCh
	}

	mux := http.NewServeMux()
	a.setupOpsHandlers(mux)
	srv := &http.Server{Addr: a.eff.Config.OpsAddr(), Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
