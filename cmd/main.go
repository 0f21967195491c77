package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ryplify/ryptrack/app"
	"github.com/ryplify/ryptrack/internal/auth"
	"github.com/ryplify/ryptrack/internal/config"
	"github.com/ryplify/ryptrack/internal/domain"
	"github.com/ryplify/ryptrack/internal/store"
	"github.com/ryplify/ryptrack/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := bootstrapUser(db, cfg); err != nil {
		logger.Error("failed to bootstrap admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := tracker.New(db, logger)

	application := app.New(logger, db, svc, app.Options{
		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenTTL,
	}).WithHost(cfg.Host).WithPort(cfg.Port)

	if err := application.Serve(); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// bootstrapUser seeds the single admin account on first run.
func bootstrapUser(db *store.File, cfg config.Config) error {
	return db.Update(func(st *store.State) error {
		if st.User != nil {
			return nil
		}
		if cfg.AdminPassword == "" {
			return errors.New("ADMIN_PASSWORD must be set on first run")
		}
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}
		st.User = &domain.User{Username: cfg.AdminUser, PasswordHash: hash}
		return nil
	})
}
