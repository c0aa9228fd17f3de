package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/qyinm/acadjobs/config"
	"github.com/qyinm/acadjobs/devapi"
	"github.com/qyinm/acadjobs/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(config.EnvString("ACADJOBS_LOG_LEVEL", config.DefaultLogLevel))
	defer func() { _ = log.Sync() }()

	gin.SetMode(config.EnvString("GIN_MODE", gin.ReleaseMode))

	store := devapi.NewStore(devapi.Seed(time.Now()), devapi.SeedSources())
	log.Info("seeded store", "jobs", store.Len(), "sources", len(store.Sources()))

	addr := config.EnvString("ACADJOBS_DEVAPI_ADDR", ":8001")
	srv := devapi.NewServer(addr, devapi.NewRouter(store, log), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, 10*time.Second); err != nil {
		log.Error("dev api failed", "err", err)
		os.Exit(1)
	}
}
