package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Access is an optional dedicated access logger writing one JSON record
// per served request. If nil, access events are simply dropped.
var Access *slog.Logger

var accessMu sync.Mutex
var accessPath string

// AttachAccessFileSink configures a JSON access logger writing to
// <dir>/access.log. If the file cannot be opened the function returns an
// error and leaves Access as nil.
func AttachAccessFileSink(dir string) error {
	if dir == "" {
		return fmt.Errorf("empty access log dir")
	}
	// If the path exists and is a symlink, fail early to avoid TOCTOU.
	if fi, err := os.Lstat(dir); err == nil {
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("access log path is a symlink: %s", dir)
		}
		if !fi.IsDir() {
			return fmt.Errorf("access log path exists and is not a directory: %s", dir)
		}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create access log directory: %w", err)
	}

	accessMu.Lock()
	defer accessMu.Unlock()
	accessPath = filepath.Join(dir, "access.log")
	if err := openAccessLocked(); err != nil {
		return err
	}
	// Emit an initial marker so consumers (and tests) can observe that the
	// sink was attached and the file is writable.
	Access.Info("access_sink_attached", "path", accessPath)
	return nil
}

func openAccessLocked() error {
	f, err := os.OpenFile(accessPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open access log file: %w", err)
	}
	Access = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return nil
}

// RotateAccess renames the live access log to a timestamped backup and
// reopens a fresh file. A missing live file is not an error.
func RotateAccess() error {
	accessMu.Lock()
	defer accessMu.Unlock()
	if accessPath == "" {
		return fmt.Errorf("no access sink attached")
	}
	if _, err := os.Stat(accessPath); err == nil {
		bak := accessPath + "." + time.Now().UTC().Format("20060102T150405Z")
		if err := os.Rename(accessPath, bak); err != nil {
			return fmt.Errorf("rotate access log: %w", err)
		}
	}
	return openAccessLocked()
}

// LogAccess records one served request on the access sink, if attached.
func LogAccess(method, path string, status int, bytes int64, dur time.Duration, remote string) {
	if Access == nil {
		return
	}
	Access.Info("request",
		"method", method,
		"path", path,
		"status", status,
		"bytes", bytes,
		"duration_ms", dur.Milliseconds(),
		"remote", remote,
	)
}
