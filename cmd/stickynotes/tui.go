package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/notify"
	"github.com/sandeepkv93/stickynotes/internal/platform/logger"
	"github.com/sandeepkv93/stickynotes/internal/update"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	// The terminal belongs to bubbletea, so logs go to a file.
	log, err := logger.New("stickynotes", cfg.Log.Verbose, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	rt, err := bootstrap(ctx, cfg, log)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		return err
	}
	defer rt.Close()

	start, _ := model.ParseGalleryKind(cfg.UI.StartGallery)
	m := update.NewModel(rt.set, update.Options{
		Engine:         rt.engine,
		Notifier:       notify.NewDesktop(),
		DesktopEnabled: cfg.Reminders.DesktopNotifications,
		StartGallery:   start,
		Log:            log,
	})

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("stickynotes failed: %w", err)
	}
	return nil
}
