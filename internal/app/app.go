package app

import (
	"context"
	"fmt"
	"net"
	"time"

	"minihttpd/internal/rotate"
	"minihttpd/pkg/banner"
	"minihttpd/pkg/config"
	"minihttpd/pkg/handlers"
	"minihttpd/pkg/logger"
	"minihttpd/pkg/models"
	"minihttpd/pkg/sensor"
	"minihttpd/pkg/server"
	"minihttpd/pkg/state"
	"minihttpd/pkg/static"
	"minihttpd/pkg/store"
)

// adminFixture is the account the exercise this server reproduces ships
// with; login tests and the curl examples in the banner rely on it.
var adminFixture = models.User{Account: "admin", Password: "password", Email: "admin@example.com"}

// App encapsulates the server components and lifecycle.
type App struct {
	eff     config.Effective
	version string

	users store.Store
	srv   *server.Server
}

// New initializes resources that do not require a running context: config
// validation, state dirs, the user store and the route table. Call Run to
// start listeners and block until shutdown.
func New(eff config.Effective, version string) (*App, error) {
	if err := validateConfig(eff); err != nil {
		return nil, err
	}

	dataPath := eff.DBPath
	if err := state.Init(dataPath); err != nil {
		return nil, fmt.Errorf("state dirs: %w", err)
	}

	var users store.Store
	if eff.Config.Storage.Driver == "pebble" {
		p, err := store.OpenPebble(eff.DBPath)
		if err != nil {
			return nil, err
		}
		users = p
	} else {
		users = store.NewMemory()
	}
	if err := store.Bootstrap(users, adminFixture); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	if eff.Config.Logging.Access.Enabled {
		if err := logger.AttachAccessFileSink(state.PathsVar.Access); err != nil {
			return nil, fmt.Errorf("access log: %w", err)
		}
	}

	if ds, err := sensor.Disk(dataPath); err == nil && ds.TotalBytes > 0 {
		logger.Info("data_disk", "path", dataPath, "free_bytes", ds.FreeBytes, "total_bytes", ds.TotalBytes)
	}

	env := &handlers.Env{
		Users:  users,
		Assets: static.NewResolver(eff.StaticRoot),
	}
	srv := server.New(env.Routes(), server.Limits{
		RPS:   eff.Config.Limits.RPS,
		Burst: eff.Config.Limits.Burst,
	})

	return &App{eff: eff, version: version, users: users, srv: srv}, nil
}

// Run starts the ops endpoint, the rotation scheduler and the data-plane
// listener, and blocks until ctx is canceled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	banner.Print(a.eff, a.version)

	opsErr := a.startOps(ctx)

	cancelRotate, err := rotate.Start(ctx, a.eff.Config)
	if err != nil {
		return err
	}
	defer cancelRotate()

	ln, err := net.Listen("tcp", a.eff.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.eff.Addr, err)
	}
	logger.Info("server_listening", "addr", a.eff.Addr)

	srvErr := make(chan error, 1)
	go func() { srvErr <- a.srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		return a.stop()
	case err := <-srvErr:
		_ = a.stop()
		return err
	case err := <-opsErr:
		_ = a.stop()
		return err
	}
}

// stop closes the listener, waits for in-flight workers with a grace
// period, and closes the store.
func (a *App) stop() error {
	logger.Info("server_stopping")

	done := make(chan struct{})
	go func() {
		_ = a.srv.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		logger.Warn("drain_timeout")
	}

	if err := a.users.Close(); err != nil {
		logger.Error("store_close_failed", "error", err)
		return err
	}
	logger.Info("server_stopped")
	return nil
}
