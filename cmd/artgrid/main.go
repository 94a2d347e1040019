package main

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/artgrid/internal/artic"
	"github.com/jask/artgrid/internal/config"
	"github.com/jask/artgrid/internal/logging"
	"github.com/jask/artgrid/internal/service"
	"github.com/jask/artgrid/internal/tui"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	client := artic.NewClient(cfg.API.BaseURL, cfg.API.Timeout,
		artic.WithUserAgent(cfg.API.UserAgent),
		artic.WithRequestsPerMinute(cfg.API.RequestsPerMinute),
	)
	loader := &service.Loader{
		Artworks: client,
		PageSize: cfg.API.PageSize,
		Fields:   cfg.API.FieldList(),
		Log:      logger,
	}

	logger.Info("starting", "api", cfg.API.BaseURL, "page_size", cfg.API.PageSize)
	p := tea.NewProgram(tui.New(ctx, cfg, loader, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Printf("error: %v\n", err)
	}
}
