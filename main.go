package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/acadjobs/api"
	"github.com/qyinm/acadjobs/config"
	"github.com/qyinm/acadjobs/logging"
	"github.com/qyinm/acadjobs/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	check := flag.Bool("check", false, "check that the jobs API is reachable and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal is owned by the UI, so logs go to a file.
	log := logging.New(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = log.Sync() }()

	client, err := api.New(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		PageSize: cfg.API.PageSize,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *check {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		status, err := client.Health(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", client.BaseURL(), err)
			os.Exit(1)
		}
		fmt.Printf("%s: %s\n", client.BaseURL(), status)
		return
	}

	log.Info("starting", "api", client.BaseURL())
	p := tea.NewProgram(ui.NewModel(client, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
