package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/qyinm/acadjobs/api"
	"github.com/qyinm/acadjobs/config"
	"github.com/qyinm/acadjobs/logging"
	"github.com/qyinm/acadjobs/mcpsrv"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(appCfg.Log.Level, "stderr")
	defer func() { _ = log.Sync() }()
	client, err := api.New(api.Options{
		BaseURL:  appCfg.API.BaseURL,
		Timeout:  appCfg.API.Timeout,
		PageSize: appCfg.API.PageSize,
	})
	if err != nil {
		log.Error("create api client", "err", err)
		os.Exit(1)
	}

	cfg := mcpsrv.LoadConfig()
	server := mcpsrv.NewServer(client, version, &mcpsrv.ServerOptions{
		PageSize: appCfg.API.PageSize,
		Logger:   log.With("component", "mcp"),
	})

	mux := http.NewServeMux()
	mux.Handle("/healthz", mcpsrv.NewHealthHandler(func(ctx context.Context) error {
		_, err := client.Health(ctx)
		return err
	}, log))
	mcpHandler := mcpsrv.NewHandler(server, mcpsrv.StreamableOptions(cfg))
	mux.Handle("/mcp", mcpsrv.WrapMCPHandler(mcpHandler, cfg, log))

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown error", "err", err)
		}
	}()

	log.Info("acadjobs-mcp listening", "addr", httpServer.Addr, "api", client.BaseURL(), "auth", cfg.APIKey != "")
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}
