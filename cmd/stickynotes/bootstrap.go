package main

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/stickynotes/internal/config"
	"github.com/sandeepkv93/stickynotes/internal/gallery"
	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/scheduler"
	"github.com/sandeepkv93/stickynotes/internal/storage"
	"go.uber.org/zap"
)

// services holds the pieces shared by the TUI and the HTTP server.
type services struct {
	provider *storage.Provider
	engine   *scheduler.Engine
	set      *gallery.Set
}

func bootstrap(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*services, error) {
	provider, err := storage.NewProvider(ctx, storage.Options{
		Backend:     storage.Backend(cfg.Storage.Backend),
		DSN:         cfg.Storage.DSN,
		RedisPrefix: cfg.Storage.RedisPrefix,
		PingTimeout: cfg.Storage.PingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	color, err := model.ParseColor(cfg.Defaults.Color)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}

	engine := scheduler.NewEngine(cfg.Reminders.SchedulerBuffer)
	engine.Start()

	set, err := gallery.NewSet(provider, gallery.EngineSchedulers(engine, log),
		gallery.WithLogger(log),
		gallery.WithSettings(gallery.Settings{
			RemindersEnabled: cfg.Reminders.Enabled,
			DefaultColor:     color,
			DefaultEmoji:     cfg.Defaults.Emoji,
		}),
	)
	if err != nil {
		engine.Stop()
		_ = provider.Close()
		return nil, err
	}

	if cfg.UI.SeedSamples {
		n, err := set.Seed(ctx)
		if err != nil {
			log.Warnw("startup", "status", "seeding failed", "ERROR", err)
		} else if n > 0 {
			log.Infow("startup", "status", "seeded sample notes", "count", n)
		}
	}
	if provider.Persistent() {
		n, err := set.Resume(ctx)
		if err != nil {
			log.Warnw("startup", "status", "resuming reminders failed", "ERROR", err)
		}
		log.Infow("startup", "status", "reminders resumed", "count", n)
	}

	log.Infow("startup", "storage", provider.Backend(), "reminders", cfg.Reminders.Enabled)
	return &services{provider: provider, engine: engine, set: set}, nil
}

func (r *services) Close() {
	r.engine.Stop()
	_ = r.provider.Close()
}
