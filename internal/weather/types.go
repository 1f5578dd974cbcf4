package weather

import (
	"fmt"
	"time"
)

// Forecast is a validated forecast document: current conditions, the daily
// outlook and the zone the readings should be shown in.
type Forecast struct {
	Currently Reading   `json:"currently"`
	Daily     []Reading `json:"daily"`
	Timezone  string    `json:"timezone"`

	// Location is Timezone resolved at parse time.
	Location *time.Location `json:"-"`
}

// Reading is one point-in-time or one-day observation.
type Reading struct {
	Time                int64   `json:"time"`
	Summary             string  `json:"summary"`
	Icon                string  `json:"icon"`
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	TemperatureLow      float64 `json:"temperature_low"`
	TemperatureHigh     float64 `json:"temperature_high"`
	Pressure            float64 `json:"pressure"`
	WindSpeed           float64 `json:"wind_speed"`
	Visibility          float64 `json:"visibility"`
	Ozone               float64 `json:"ozone"`
	PrecipProbability   float64 `json:"precip_probability"`
}

// LocalTime returns the reading's timestamp in loc.
func (r Reading) LocalTime(loc *time.Location) time.Time {
	return time.Unix(r.Time, 0).In(loc)
}

// Zone returns the forecast's location, resolving Timezone when the
// forecast was not built by Parse.
func (f *Forecast) Zone() (*time.Location, error) {
	if f.Location != nil {
		return f.Location, nil
	}
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrMalformed, f.Timezone, err)
	}
	return loc, nil
}
