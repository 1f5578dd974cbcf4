package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/swelljoe/wthr.ink/internal/db"
)

func TestRunListsRenders(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	store, err := db.NewDB(dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	renders := []db.Render{
		{RenderedAt: at, Timezone: "UTC", Summary: "Overcast", Temperature: 7.25, Icon: "cloudy", Category: "cloud"},
		{RenderedAt: at.Add(time.Hour), Timezone: "UTC", Summary: "Snow", Temperature: -0.5, Icon: "snow", Category: "snow"},
	}
	for _, r := range renders {
		if err := store.RecordRender(context.Background(), r); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
	}
	store.Close()

	var out bytes.Buffer
	if err := run(context.Background(), dsn, 1, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out.String())
	}
	for _, want := range []string{"2024-03-01 13:30", "Snow", "-0.5C", "snow (snow)"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("expected %q in %q", want, lines[1])
		}
	}
}

func TestRunWithoutDSN(t *testing.T) {
	if err := run(context.Background(), "", 10, &bytes.Buffer{}); err == nil {
		t.Error("expected an error without a DSN")
	}
}
