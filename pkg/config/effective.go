package config

import (
	"net"
	"os"
	"strconv"
	"strings"
)

// Effective is the merged view of file, environment and flags that the rest
// of the process consumes.
type Effective struct {
	Config     *Config
	Addr       string
	DBPath     string
	StaticRoot string
	// Source names the winning layer for the listen address: "flags",
	// "env" or "config".
	Source string
}

// LoadEnvOverrides applies MINIHTTPD_* environment overrides onto cfg and
// reports whether any were used.
func LoadEnvOverrides(cfg *Config) bool {
	envUsed := false

	if v := os.Getenv("MINIHTTPD_ADDR"); v != "" {
		envUsed = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		} else {
			cfg.Server.Address = v
		}
	}
	if v := os.Getenv("MINIHTTPD_OPS_PORT"); v != "" {
		if pi, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Ops.Enabled = true
			cfg.Ops.Port = pi
		}
	}
	if v := os.Getenv("MINIHTTPD_DB_PATH"); v != "" {
		envUsed = true
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("MINIHTTPD_STORE_DRIVER"); v != "" {
		envUsed = true
		cfg.Storage.Driver = strings.TrimSpace(v)
	}
	if v := os.Getenv("MINIHTTPD_STATIC_ROOT"); v != "" {
		envUsed = true
		cfg.Assets.Root = v
	}
	if v := os.Getenv("MINIHTTPD_LOG_LEVEL"); v != "" {
		envUsed = true
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MINIHTTPD_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			envUsed = true
			cfg.Limits.RPS = f
		}
	}
	if v := os.Getenv("MINIHTTPD_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Limits.Burst = n
		}
	}
	if v := os.Getenv("MINIHTTPD_ROTATION_CRON"); v != "" {
		envUsed = true
		cfg.Rotation.Enabled = true
		cfg.Rotation.Cron = strings.TrimSpace(v)
	}
	return envUsed
}

// ResolveConfigPath picks the config path: an explicit -config flag wins,
// then MINIHTTPD_CONFIG, then the flag default.
func ResolveConfigPath(flagVal string, flagSet bool) string {
	if flagSet {
		return flagVal
	}
	if v := os.Getenv("MINIHTTPD_CONFIG"); v != "" {
		return v
	}
	return flagVal
}

// LoadEffective merges the config file (if present) with environment
// overrides. Flag precedence is applied by the caller, which knows which
// flags were explicitly set.
func LoadEffective(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			cfg = &Config{}
		} else {
			return nil, false, err
		}
	}
	envUsed := LoadEnvOverrides(cfg)
	return cfg, envUsed, nil
}
