package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/acadjobs/api"
	"github.com/qyinm/acadjobs/config"
	"github.com/qyinm/acadjobs/logging"
	"github.com/qyinm/acadjobs/mcpsrv"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol; logs go to stderr.
	log := logging.New(cfg.Log.Level, "stderr")
	defer func() { _ = log.Sync() }()
	client, err := api.New(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		PageSize: cfg.API.PageSize,
	})
	if err != nil {
		log.Error("create api client", "err", err)
		os.Exit(1)
	}

	server := mcpsrv.NewServer(client, version, &mcpsrv.ServerOptions{
		PageSize: cfg.API.PageSize,
		Logger:   log,
	})

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Error("stdio mcp server failed", "err", err)
		os.Exit(1)
	}
}
