// Package app assembles the bot: cache, lookup gateway, dialogue
// sessions, Telegram wiring and the maintenance scheduler.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/bootstrap"
	coreconfig "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/config"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/logger"
	coretelegram "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/bot"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/dialog"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/lookup"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/scheduler"

	"log/slog"
)

// Build wires the application and returns run options for the Telegram
// loop plus a cleanup callback.
func Build(cfg *coreconfig.Config, res *bootstrap.Result) (coretelegram.RunOptions, func() error, error) {
	cache := lookup.NewCache(res.DB, cfg.Cache.TTL())
	gateway := lookup.NewService(cfg.Lookup, cache, nil)

	controller := dialog.NewController(gateway, cfg.Lookup)
	sessions := dialog.NewSessions(controller)

	b := bot.New(cfg, sessions)
	reg := b.BuildRegistry()

	sched, err := scheduler.New()
	if err != nil {
		return coretelegram.RunOptions{}, nil, fmt.Errorf("app: scheduler init failed: %w", err)
	}

	purgeEvery := cfg.Cache.PurgeInterval()
	if err := sched.AddJob("cache_purge", purgeEvery, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		removed, err := cache.PurgeExpired(ctx)
		if err != nil {
			logger.SCHED.Error("cache purge failed",
				slog.String("event", "cache.purge_failed"),
				slog.String("err", err.Error()),
			)
			return
		}
		if removed > 0 {
			logger.SCHED.Info("cache purged",
				slog.String("event", "cache.purged"),
				slog.Int64("removed", removed),
			)
		}
	}); err != nil {
		return coretelegram.RunOptions{}, nil, fmt.Errorf("app: purge job registration failed: %w", err)
	}

	opts := coretelegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(cfg, nil),
		Routes:      b.Routes(reg),
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			b.SetDispatcher(rt.Dispatcher)
			sched.Start()
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return sched.Shutdown()
		},
	}

	return opts, nil, nil
}
