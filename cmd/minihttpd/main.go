package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"minihttpd/internal/app"
	"minihttpd/pkg/config"
	"minihttpd/pkg/logger"
	"minihttpd/pkg/shutdown"
)

// build metadata - set via ldflags during build/release
var (
	version = "dev"
	commit  = "none"
)

func main() {
	_ = godotenv.Load(".env")
	addrVal, dbVal, staticVal, cfgVal, setFlags := config.ParseCommandFlags()

	cfgPath := config.ResolveConfigPath(cfgVal, setFlags["config"])
	cfg, envUsed, err := config.LoadEffective(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitWithOptions(cfg.Logging.Level, cfg.Logging.Format)

	// Flags explicitly set win over env/config.
	eff := config.Effective{Config: cfg, Source: "config"}
	if envUsed {
		eff.Source = "env"
	}
	if setFlags["addr"] {
		eff.Addr = addrVal
		eff.Source = "flags"
	} else {
		eff.Addr = cfg.Addr()
	}
	if setFlags["db"] {
		eff.DBPath = dbVal
	} else if cfg.Storage.DBPath != "" {
		eff.DBPath = cfg.Storage.DBPath
	} else {
		eff.DBPath = dbVal
	}
	if setFlags["static"] {
		eff.StaticRoot = staticVal
	} else if cfg.Assets.Root != "" {
		eff.StaticRoot = cfg.Assets.Root
	} else {
		eff.StaticRoot = staticVal
	}

	verStr := version
	if commit != "none" {
		verStr += " (" + commit + ")"
	}

	a, err := app.New(eff, verStr)
	if err != nil {
		shutdown.Abort("init failed", err, eff.DBPath)
	}

	ctx, cancel := shutdown.SetupSignalHandler(context.Background())
	defer cancel()

	if err := a.Run(ctx); err != nil {
		shutdown.Abort("server failed", err, eff.DBPath)
	}
}
