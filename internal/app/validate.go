package app

import (
	"fmt"
	"os"

	"minihttpd/pkg/config"
)

// validateConfig performs quick, fail-fast validation of the effective
// configuration before starting long-running services. Keep checks light
// and focused so callers can surface user-friendly errors.
func validateConfig(eff config.Effective) error {
	if eff.Addr == "" {
		return fmt.Errorf("listen address is empty: set --addr flag, MINIHTTPD_ADDR env, or server.address in config")
	}
	if eff.DBPath == "" {
		return fmt.Errorf("data path is empty: set --db flag, MINIHTTPD_DB_PATH env, or storage.db_path in config")
	}
	if eff.StaticRoot == "" {
		return fmt.Errorf("static root is empty: set --static flag, MINIHTTPD_STATIC_ROOT env, or assets.root in config")
	}
	if fi, err := os.Stat(eff.StaticRoot); err != nil || !fi.IsDir() {
		return fmt.Errorf("static root not accessible: %s", eff.StaticRoot)
	}
	if d := eff.Config.Storage.Driver; d != "" && d != "memory" && d != "pebble" {
		return fmt.Errorf("unknown storage driver %q: want memory or pebble", d)
	}
	return nil
}
