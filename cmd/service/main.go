package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/2beens/liftlog/internal"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/logging"

	log "github.com/sirupsen/logrus"
)

// set via ldflags at build time
var versionInfo = "dev"

func main() {
	env := flag.String("env", "development", "environment: development or production")
	configPath := flag.String("config", "config.toml", "path to the config file")
	logToStdout := flag.Bool("o", false, "additionally log to stdout")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Printf("load config: %s\n", err)
		os.Exit(1)
	}

	logFileName := ""
	if cfg.LogsPath != "" {
		logFileName = path.Join(cfg.LogsPath, "liftlog-service.log")
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      logFileName,
		LogLevel:         cfg.LogLevel,
		LogToStdout:      cfg.LogToStdout || *logToStdout,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "liftlog-backend",
		Environment:      cfg.Environment,
	})

	appSecretHash := os.Getenv("LIFTLOG_APP_SECRET_HASH")
	if appSecretHash == "" {
		log.Warnln("app secret hash not set, app secret login disabled")
	}
	redisPassword := os.Getenv("LIFTLOG_REDIS_PASSWORD")
	honeycombTracingEnabled := os.Getenv("HONEYCOMB_API_KEY") != ""

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:                  cfg,
		AppSecretHash:           appSecretHash,
		RedisPassword:           redisPassword,
		HoneycombTracingEnabled: honeycombTracingEnabled,
		VersionInfo:             versionInfo,
	})
	if err != nil {
		log.Fatalf("create server: %s", err)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-chOsInterrupt
		log.Warnf("signal [%s] received, shutting down ...", sig)
		cancel()
		server.GracefulShutdown()
		os.Exit(0)
	}()

	server.Serve(ctx)
}
