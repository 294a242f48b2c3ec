// Package cmd hosts the process runner: env loading, configuration,
// bootstrap and the bot lifecycle.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/bootstrap"
	coreconfig "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/config"
	coredatabase "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/database"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/logger"
	coretelegram "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram"

	"log/slog"
)

// BuildFunc assembles the application on top of bootstrapped
// infrastructure. The returned cleanup runs on shutdown.
type BuildFunc func(cfg *coreconfig.Config, res *bootstrap.Result) (coretelegram.RunOptions, func() error, error)

// Options describe how to locate configuration and build the app.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string
	MigrationsDir     string

	Build BuildFunc
}

// Run loads configuration, bootstraps infrastructure, builds the app
// and runs the bot until SIGINT/SIGTERM.
func Run(opts Options) error {
	if opts.Build == nil {
		return fmt.Errorf("cmd: Build is required")
	}

	// Optional .env for local development; real deployments use the environment.
	_ = godotenv.Load()

	env := opts.ConfigEnvVar
	if env == "" {
		env = "CONFIG_PATH"
	}
	cfgPath := os.Getenv(env)
	if cfgPath == "" {
		cfgPath = opts.DefaultConfigPath
	}
	if cfgPath == "" {
		return fmt.Errorf("cmd: config path not provided via %s or DefaultConfigPath", env)
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}

	migrationsDir := opts.MigrationsDir
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config: cfg,
		Database: coredatabase.Config{
			Path:          cfg.Cache.Path,
			MigrationsDir: migrationsDir,
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := res.DB.Close(); err != nil {
			log.Printf("cache database close error: %v", err)
		}
	}()
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	runOpts, cleanup, err := opts.Build(cfg, res)
	if err != nil {
		return fmt.Errorf("cmd: app build failed: %w", err)
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				log.Printf("cleanup error: %v", err)
			}
		}()
	}

	startedAt := time.Now()
	prevStart := runOpts.OnStart
	runOpts.OnStart = func(ctx context.Context, rt coretelegram.Runtime) error {
		if prevStart != nil {
			if err := prevStart(ctx, rt); err != nil {
				return err
			}
		}
		logger.L.With("component", "app").Info("app ready",
			slog.String("event", "ready"),
			slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
		)
		return nil
	}

	prevStop := runOpts.OnStop
	runOpts.OnStop = func(ctx context.Context, rt coretelegram.Runtime) error {
		logger.L.With("component", "app").Info("shutting down...",
			slog.String("event", "shutdown"),
		)
		if prevStop != nil {
			return prevStop(ctx, rt)
		}
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return coretelegram.RunTelegram(ctx, runOpts)
}
