package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/swelljoe/wthr.ink/internal/db"
	"github.com/swelljoe/wthr.ink/internal/display"
	"github.com/swelljoe/wthr.ink/internal/icons"
	"github.com/swelljoe/wthr.ink/internal/render"
	"github.com/swelljoe/wthr.ink/internal/weather"
	"github.com/swelljoe/wthr.ink/resources"
)

const londonForecast = `{
	"latitude": 51.5074,
	"longitude": -0.1278,
	"timezone": "Europe/London",
	"currently": {
		"time": 1700000000,
		"summary": "Partly Cloudy",
		"icon": "partly-cloudy-day",
		"precipProbability": 0.12,
		"temperature": 11.37,
		"apparentTemperature": 9.84,
		"pressure": 1013.24,
		"windSpeed": 4.61,
		"visibility": 16.09,
		"ozone": 291.35
	},
	"daily": {
		"data": [
			{"time": 1699920000, "icon": "rain", "temperatureLow": 6.2, "temperatureHigh": 12.9},
			{"time": 1700006400, "icon": "clear-day", "temperatureLow": 4.1, "temperatureHigh": 10.4},
			{"time": 1700092800, "icon": "wind", "temperatureLow": 5.5, "temperatureHigh": 9.7}
		]
	}
}`

type recorder struct {
	renders []db.Render
	err     error
}

func (r *recorder) RecordRender(ctx context.Context, render db.Render) error {
	if r.err != nil {
		return r.err
	}
	r.renders = append(r.renders, render)
	return nil
}

var loadedAt = time.Date(2023, 11, 14, 22, 15, 0, 0, time.UTC)

func newTestDashboard(t *testing.T, handler http.Handler, history Recorder) (*Dashboard, *display.Memory) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	panel := display.NewMemory(display.Width, display.Height, display.Red)
	set, err := icons.Load(resources.Icons, panel.Palette().Indices())
	if err != nil {
		t.Fatalf("loading icons: %v", err)
	}
	faces, err := render.DefaultFaces()
	if err != nil {
		t.Fatalf("loading fonts: %v", err)
	}

	d := New(weather.NewClient(srv.URL, "secret"), panel, faces, set, history)
	d.now = func() time.Time { return loadedAt }
	return d, panel
}

func forecastHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func TestRefresh_London(t *testing.T) {
	history := &recorder{}
	d, panel := newTestDashboard(t, forecastHandler(londonForecast), history)

	if err := d.Refresh(context.Background(), 51.5074, -0.1278); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(panel.Frames()) != 1 {
		t.Fatalf("expected one frame, got %d", len(panel.Frames()))
	}
	frame := panel.Last()
	if frame.Bounds() != panel.Bounds() {
		t.Errorf("frame is %v, panel is %v", frame.Bounds(), panel.Bounds())
	}

	accent := 0
	for _, p := range frame.Pix {
		if p == display.Accent {
			accent++
		}
	}
	if accent == 0 {
		t.Error("expected accent text on the frame")
	}

	if len(history.renders) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history.renders))
	}
	got := history.renders[0]
	if !got.RenderedAt.Equal(loadedAt) {
		t.Errorf("expected render time %v, got %v", loadedAt, got.RenderedAt)
	}
	if got.Timezone != "Europe/London" || got.Summary != "Partly Cloudy" || got.Temperature != 11.37 {
		t.Errorf("unexpected history entry %+v", got)
	}
	if got.Icon != "partly-cloudy-day" || got.Category != string(icons.Cloud) {
		t.Errorf("expected the cloud category, got %+v", got)
	}
}

func TestRefresh_MatchesRenderer(t *testing.T) {
	d, panel := newTestDashboard(t, forecastHandler(londonForecast), nil)

	if err := d.Refresh(context.Background(), 51.5074, -0.1278); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fc, err := weather.Parse([]byte(londonForecast))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	want, err := d.renderer.Frame(fc, loadedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := panel.Last()
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("frame differs from the rendered forecast at byte %d", i)
		}
	}
}

func TestRefresh_ServiceUnavailable(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	history := &recorder{}
	d, panel := newTestDashboard(t, handler, history)

	err := d.Refresh(context.Background(), 51.5074, -0.1278)
	if !errors.Is(err, weather.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if len(panel.Frames()) != 0 {
		t.Errorf("expected no frame, got %d", len(panel.Frames()))
	}
	if len(history.renders) != 0 {
		t.Errorf("expected no history, got %d", len(history.renders))
	}
}

func TestRefresh_NoPartialRender(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "malformed",
			body: `{"timezone": "Europe/London"}`,
			want: weather.ErrMalformed,
		},
		{
			name: "unknown icon",
			body: `{"timezone": "UTC", "currently": {"summary": "Ash", "icon": "volcanic-ash", "temperature": 1, "apparentTemperature": 1, "pressure": 1, "windSpeed": 1, "visibility": 1, "ozone": 1, "precipProbability": 0}, "daily": {"data": [
				{"time": 0, "icon": "rain", "temperatureLow": 1, "temperatureHigh": 2},
				{"time": 86400, "icon": "rain", "temperatureLow": 1, "temperatureHigh": 2},
				{"time": 172800, "icon": "rain", "temperatureLow": 1, "temperatureHigh": 2}
			]}}`,
			want: icons.ErrUnknownCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, panel := newTestDashboard(t, forecastHandler(tt.body), nil)

			err := d.Refresh(context.Background(), 0, 0)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(panel.Frames()) != 0 {
				t.Errorf("expected no frame, got %d", len(panel.Frames()))
			}
		})
	}
}

func TestRefresh_HistoryFailureIsNotFatal(t *testing.T) {
	history := &recorder{err: errors.New("disk full")}
	d, panel := newTestDashboard(t, forecastHandler(londonForecast), history)

	if err := d.Refresh(context.Background(), 51.5074, -0.1278); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(panel.Frames()) != 1 {
		t.Errorf("expected the frame to be shown, got %d frames", len(panel.Frames()))
	}
}

func TestRefresh_SQLiteHistory(t *testing.T) {
	store, err := db.NewDB(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening history: %v", err)
	}
	defer store.Close()

	d, _ := newTestDashboard(t, forecastHandler(londonForecast), store)
	if err := d.Refresh(context.Background(), 51.5074, -0.1278); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	renders, err := store.RecentRenders(context.Background(), 5)
	if err != nil {
		t.Fatalf("reading history: %v", err)
	}
	if len(renders) != 1 || renders[0].Category != "cloud" {
		t.Errorf("expected one cloud render, got %+v", renders)
	}
}

func TestHistoryEntry_UnknownIcon(t *testing.T) {
	fc := &weather.Forecast{Timezone: "UTC", Currently: weather.Reading{Icon: "volcanic-ash"}}
	if got := historyEntry(fc, loadedAt); got.Category != "" {
		t.Errorf("expected no category, got %q", got.Category)
	}
}
