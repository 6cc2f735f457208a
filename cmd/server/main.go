package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/config"
	"github.com/stayscout/stayscout/internal/logging"
	"github.com/stayscout/stayscout/internal/providers/stays"
	"github.com/stayscout/stayscout/internal/server"
)

func main() {
	ignoreRobots := flag.Bool("ignore-robots-txt", false, "Disable the robots.txt gate for all calls")
	identity := flag.String("identity", "", "Fetch identity: browser or declared")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *ignoreRobots {
		cfg.Robots.Ignore = true
	}
	if *identity != "" {
		cfg.Fetch.Identity = *identity
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		log = logging.NewDefault()
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := stays.FromConfig(cfg, log)
	srv := server.New(provider, log)

	if cfg.Robots.Ignore {
		log.Warn("robots.txt gate disabled globally")
	}

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
