package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/swelljoe/wthr.ink/internal/config"
	"github.com/swelljoe/wthr.ink/internal/db"
)

func main() {
	config.LoadEnv()

	dsn := flag.String("history", os.Getenv("WTHR_HISTORY"), "render history DSN (env WTHR_HISTORY)")
	limit := flag.Int("n", 10, "number of renders to list")
	flag.Parse()

	if err := run(context.Background(), *dsn, *limit, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run lists the most recent renders, newest first.
func run(ctx context.Context, dsn string, limit int, out io.Writer) error {
	if dsn == "" {
		return fmt.Errorf("no history database: set -history or WTHR_HISTORY")
	}

	database, err := db.NewDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer database.Close()

	renders, err := database.RecentRenders(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RENDERED\tZONE\tSUMMARY\tTEMP\tICON")
	for _, r := range renders {
		at := r.RenderedAt
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			at = at.In(loc)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fC\t%s (%s)\n",
			at.Format("2006-01-02 15:04"), r.Timezone, r.Summary, r.Temperature, r.Icon, r.Category)
	}
	return w.Flush()
}
