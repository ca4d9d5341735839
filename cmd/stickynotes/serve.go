package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	goruntime "runtime"
	"sync"
	"syscall"

	"github.com/sandeepkv93/stickynotes/internal/api"
	"github.com/sandeepkv93/stickynotes/internal/dispatch"
	"github.com/sandeepkv93/stickynotes/internal/notify"
	"github.com/sandeepkv93/stickynotes/internal/platform/logger"
	"github.com/sandeepkv93/stickynotes/internal/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the galleries over HTTP and deliver reminders in the background",
	Run: func(cmd *cobra.Command, args []string) {
		log, err := logger.New("stickynotes-api", cfg.Log.Verbose)
		if err != nil {
			fatal("logger", err)
		}
		defer func() { _ = log.Sync() }()

		if err := serve(log); err != nil {
			log.Errorw("startup", "ERROR", err)
			_ = log.Sync()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(log *zap.SugaredLogger) error {
	if _, err := maxprocs.Set(); err != nil {
		return fmt.Errorf("maxprocs: %w", err)
	}
	log.Infow("startup", "GOMAXPROCS", goruntime.GOMAXPROCS(0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := bootstrap(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	// =======================================================================================================
	// Reminder delivery

	topic, err := dispatch.OpenTopic(ctx, cfg.Dispatch.TopicURL)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Dispatch.ShutdownTimeout)
		defer shutdownCancel()
		_ = topic.Shutdown(shutdownCtx)
	}()
	sub, err := dispatch.OpenSubscription(ctx, cfg.Dispatch.TopicURL)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Dispatch.ShutdownTimeout)
		defer shutdownCancel()
		_ = sub.Shutdown(shutdownCtx)
	}()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Reminders.DesktopNotifications {
		notifier = notify.NewDesktop()
	}
	deliver := func(ctx context.Context, ev scheduler.ReminderEvent) error {
		rt.set.Fired(ev.Gallery, ev.ID, ev.TriggerAt)
		log.Infow("reminder", "gallery", ev.Gallery, "id", ev.ID, "title", ev.Title, "body", ev.Body)
		return notifier.Send(ctx, notify.FromReminder(ev))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = dispatch.Forward(ctx, rt.engine.C(), topic, log)
	}()
	go func() {
		defer wg.Done()
		if err := dispatch.Consume(ctx, sub, cfg.Dispatch.MaxWorkers, deliver, log); err != nil {
			log.Errorw("dispatch", "ERROR", err)
		}
	}()
	defer wg.Wait()
	defer cancel()

	// =======================================================================================================
	// App start and shutdown

	svr := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTP.Port),
		Handler:      api.NewRouter(api.New(rt.set, log)),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("startup", "status", "started http server", "port", cfg.HTTP.Port)
		serverErrors <- svr.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer shutdownCancel()

		if err := svr.Shutdown(shutdownCtx); err != nil {
			_ = svr.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
