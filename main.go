package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tinyboard/internal/config"
	"tinyboard/internal/game"
	"tinyboard/internal/handlers"
	"tinyboard/internal/logging"
	"tinyboard/internal/render"
	"tinyboard/internal/templates"
)

func main() {
	cfgPath := flag.String("config", "", "path to a config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Setup(*cfgPath)
	if err != nil {
		logging.L().Fatalw("failed to load configuration", "error", err)
	}
	logging.Debug = cfg.Debug || *debug
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	defer logging.Sync()

	templates.SetCommit(commit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize game hub
	hub := game.NewHub(ctx, cfg.IdleTimeout)

	// Initialize HTTP handlers
	h := handlers.NewHandler(hub, render.New(cfg.ImagePrefix), cfg.PingInterval)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: h.Router()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Infof("Tiny Board %s (%s) listening on %s", commit, buildDate, cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.L().Fatalw("server error", "error", err)
	}
	logging.Infof("server closed")
}
