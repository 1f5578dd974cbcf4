// Package dashboard runs one refresh of the panel: fetch the forecast,
// lay it out, push the frame and note it in the history.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/swelljoe/wthr.ink/internal/db"
	"github.com/swelljoe/wthr.ink/internal/display"
	"github.com/swelljoe/wthr.ink/internal/icons"
	"github.com/swelljoe/wthr.ink/internal/render"
	"github.com/swelljoe/wthr.ink/internal/weather"
)

// Fetcher returns the forecast for a location.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*weather.Forecast, error)
}

// Recorder stores a rendered frame's summary.
type Recorder interface {
	RecordRender(ctx context.Context, r db.Render) error
}

// Dashboard handles one panel and its data source
type Dashboard struct {
	weather  Fetcher
	display  display.Display
	renderer *render.Renderer
	history  Recorder
	now      func() time.Time
}

// New creates a dashboard. history may be nil.
func New(w Fetcher, d display.Display, faces *render.Faces, set icons.Set, history Recorder) *Dashboard {
	return &Dashboard{
		weather:  w,
		display:  d,
		renderer: render.ForDisplay(d, faces, set),
		history:  history,
		now:      time.Now,
	}
}

// Refresh fetches the forecast for lat/lon and shows it. Nothing reaches
// the display unless the fetch and every drawing step succeeded. A failed
// history write is logged only.
func (d *Dashboard) Refresh(ctx context.Context, lat, lon float64) error {
	fc, err := d.weather.Fetch(ctx, lat, lon)
	if err != nil {
		return fmt.Errorf("failed to get forecast: %w", err)
	}
	log.Printf("Forecast loaded for %s: %s", fc.Timezone, fc.Currently.Summary)

	now := d.now()
	frame, err := d.renderer.Frame(fc, now)
	if err != nil {
		return fmt.Errorf("failed to draw forecast: %w", err)
	}

	if err := d.display.Render(frame); err != nil {
		return fmt.Errorf("failed to update display: %w", err)
	}
	log.Println("Display updated")

	if d.history != nil {
		if err := d.history.RecordRender(ctx, historyEntry(fc, now)); err != nil {
			log.Printf("Failed to record render: %v", err)
		}
	}
	return nil
}

func historyEntry(fc *weather.Forecast, at time.Time) db.Render {
	r := db.Render{
		RenderedAt:  at,
		Timezone:    fc.Timezone,
		Summary:     fc.Currently.Summary,
		Temperature: fc.Currently.Temperature,
		Icon:        fc.Currently.Icon,
	}
	if c, err := icons.Lookup(fc.Currently.Icon); err == nil {
		r.Category = string(c)
	}
	return r
}
