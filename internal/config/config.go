// Package config reads the command line and the WTHR_* environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/swelljoe/wthr.ink/internal/display"
	"github.com/swelljoe/wthr.ink/internal/weather"
)

// ErrUsage reports a missing or invalid argument.
var ErrUsage = errors.New("config: invalid arguments")

// Config is everything a run needs.
type Config struct {
	Colour    display.Colour
	APIKey    string
	Latitude  float64
	Longitude float64

	// Endpoint is the forecast API base URL.
	Endpoint string
	// Resources is a directory of icon-*.png files; empty uses the
	// embedded set.
	Resources string
	// Font is a TrueType file; empty uses Go Bold.
	Font string
	// Output writes a PNG preview instead of driving the panel.
	Output string
	// History is the render history DSN; empty disables it.
	History string
}

// LoadEnv loads a .env file (or the named files) into the environment.
// A missing file is logged and otherwise ignored.
func LoadEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// Parse parses args (without the program name). Usage errors are written
// to out.
func Parse(args []string, out io.Writer) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("wthr-ink", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.Var(&cfg.Colour, "colour", "ePaper display colour (red, black or yellow)")
	fs.Var(&cfg.Colour, "c", "shorthand for -colour")

	key := getEnvOrDefault("WTHR_DSKEY", "")
	fs.StringVar(&cfg.APIKey, "dskey", key, "Dark Sky secret API key (env WTHR_DSKEY)")
	fs.StringVar(&cfg.APIKey, "d", key, "shorthand for -dskey")

	fs.Float64Var(&cfg.Latitude, "latitude", 0, "latitude of the location")
	fs.Float64Var(&cfg.Latitude, "l", 0, "shorthand for -latitude")
	fs.Float64Var(&cfg.Longitude, "longitude", 0, "longitude of the location")
	fs.Float64Var(&cfg.Longitude, "L", 0, "shorthand for -longitude")

	fs.StringVar(&cfg.Endpoint, "endpoint", getEnvOrDefault("WTHR_ENDPOINT", weather.DefaultEndpoint),
		"forecast API base URL (env WTHR_ENDPOINT)")
	fs.StringVar(&cfg.Resources, "resources", getEnvOrDefault("WTHR_RESOURCES", ""),
		"directory of icon-*.png files, default embedded (env WTHR_RESOURCES)")
	fs.StringVar(&cfg.Font, "font", getEnvOrDefault("WTHR_FONT", ""),
		"TrueType font file, default Go Bold (env WTHR_FONT)")
	fs.StringVar(&cfg.Output, "output", getEnvOrDefault("WTHR_OUTPUT", ""),
		"write a PNG preview to this file instead of the panel (env WTHR_OUTPUT)")
	fs.StringVar(&cfg.History, "history", getEnvOrDefault("WTHR_HISTORY", ""),
		"render history DSN, sqlite path or postgres:// URL (env WTHR_HISTORY)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	switch {
	case cfg.Colour == "":
		return nil, fmt.Errorf("%w: -colour is required", ErrUsage)
	case cfg.APIKey == "":
		return nil, fmt.Errorf("%w: -dskey is required", ErrUsage)
	case !set["latitude"] && !set["l"]:
		return nil, fmt.Errorf("%w: -latitude is required", ErrUsage)
	case !set["longitude"] && !set["L"]:
		return nil, fmt.Errorf("%w: -longitude is required", ErrUsage)
	}

	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return nil, fmt.Errorf("%w: latitude %v out of range", ErrUsage, cfg.Latitude)
	}
	if cfg.Longitude < -180 || cfg.Longitude > 180 {
		return nil, fmt.Errorf("%w: longitude %v out of range", ErrUsage, cfg.Longitude)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
