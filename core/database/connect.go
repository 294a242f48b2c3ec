package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/logger"
	"log/slog"
)

// Connect opens the sqlite cache database, creating the parent directory
// if needed, and verifies connectivity.
func Connect(cfg Config) (*sqlx.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db connect: empty sqlite path")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("db connect: create dir %s: %w", dir, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, "sqlite", cfg.Path)
	took := time.Since(start)
	if err != nil {
		logger.DB.Error("db connect failed",
			slog.String("event", "db.connect"),
			slog.String("driver", "sqlite"),
			slog.String("path", cfg.Path),
			slog.Duration("duration", logger.RoundMS(took)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	// sqlite permits a single writer; keep the pool tight to avoid
	// SQLITE_BUSY under concurrent cache writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		logger.DB.Warn("db pragma failed",
			slog.String("event", "db.pragma"),
			slog.String("err", err.Error()),
		)
	}

	logger.DB.Info("db connected",
		slog.String("event", "db.connect"),
		slog.String("driver", "sqlite"),
		slog.String("path", cfg.Path),
		slog.Duration("duration", logger.RoundMS(took)),
	)

	return db, nil
}
