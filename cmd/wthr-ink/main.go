package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/swelljoe/wthr.ink/internal/config"
	"github.com/swelljoe/wthr.ink/internal/dashboard"
	"github.com/swelljoe/wthr.ink/internal/db"
	"github.com/swelljoe/wthr.ink/internal/display"
	"github.com/swelljoe/wthr.ink/internal/icons"
	"github.com/swelljoe/wthr.ink/internal/render"
	"github.com/swelljoe/wthr.ink/internal/weather"
	"github.com/swelljoe/wthr.ink/resources"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	panel, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	defer panel.Close()

	var iconFS fs.FS = resources.Icons
	if cfg.Resources != "" {
		iconFS = os.DirFS(cfg.Resources)
	}
	set, err := icons.Load(iconFS, panel.Palette().Indices())
	if err != nil {
		return err
	}

	faces, err := render.LoadFaces(cfg.Font)
	if err != nil {
		return err
	}

	var history dashboard.Recorder
	if cfg.History != "" {
		store, err := db.NewDB(cfg.History)
		if err != nil {
			log.Printf("Warning: Render history unavailable: %v", err)
		} else {
			defer store.Close()
			history = store
		}
	}

	client := weather.NewClient(cfg.Endpoint, cfg.APIKey)
	d := dashboard.New(client, panel, faces, set, history)
	return d.Refresh(ctx, cfg.Latitude, cfg.Longitude)
}

func openDisplay(cfg *config.Config) (display.Display, error) {
	if cfg.Output != "" {
		log.Printf("Writing preview to %s", cfg.Output)
		return display.NewPNG(cfg.Output, cfg.Colour), nil
	}
	return display.OpenInky(cfg.Colour)
}
