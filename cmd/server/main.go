package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/cardgen/internal/api"
	"github.com/dgallion1/cardgen/internal/config"
	"github.com/dgallion1/cardgen/internal/fragment"
	"github.com/dgallion1/cardgen/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize clients and the renderer.
	fragments := fragment.NewClient(cfg.ContentAPIURLs, cfg.ContentAPIKey)
	renderer := render.New(render.RoleConfig{
		OfferKeywords:     cfg.OfferKeywords,
		ImportantKeywords: cfg.ImportantKeywords,
	}, cfg.ImageHost, cfg.DescriptionMinLength)

	// Initialize HTTP server.
	srv := api.NewServer(fragments, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		fragments.Close()
	}()

	log.Info("starting cardgen", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
