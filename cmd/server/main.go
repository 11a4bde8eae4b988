package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/vytor/flashdeck/internal/apiclient"
	"github.com/vytor/flashdeck/internal/app"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/notify"
	"github.com/vytor/flashdeck/internal/web"
)

func main() {
	cfg := config.Load()
	cfg.RegisterFlags(pflag.CommandLine)
	pflag.Parse()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Flashdeck Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("api_base_url=%s", cfg.APIBaseURL)
	log.Debug("notify_display=%s", cfg.NotifyDisplay)
	log.Debug("notify_exit=%s", cfg.NotifyExit)
	log.Debug("log_level=%s", cfg.LogLevel)

	toasts := notify.New(notify.WithTimings(cfg.NotifyDisplay, cfg.NotifyExit))
	defer toasts.Close()

	client := apiclient.New(cfg.APIBaseURL)
	ctrl := app.NewController(client, toasts)

	// A failed first load is shown as a toast; the UI still comes up.
	if err := ctrl.LoadDecks(context.Background()); err != nil {
		log.Warn("initial deck load failed: %v", err)
	}

	srv, err := web.NewServer(ctrl, toasts)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	handler, err := srv.Routes()
	if err != nil {
		log.Error("failed to build routes: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Flashdeck Stopped")
	log.Info("===========================================")
}
