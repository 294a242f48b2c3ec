package router

import (
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/logger"
	tg "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/middleware"
	"log/slog"
)

// CommandRoutes prepares command handlers wrapped with shared middleware.
// Admin-only commands additionally pass through the admin check.
func CommandRoutes(reg *tg.Registry, opts middleware.AdminOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		h = middleware.RecoverMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		if def.AdminOnly {
			h = middleware.AdminOnlyMiddleware(opts)(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
