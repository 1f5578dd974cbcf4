package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultEndpoint is the Dark Sky forecast API. Any provider speaking the
// same protocol (Pirate Weather, for one) can be used instead.
const DefaultEndpoint = "https://api.darksky.net/forecast"

// MinDailyReadings is the number of daily readings a forecast must carry.
const MinDailyReadings = 3

var (
	// ErrFetch reports a network failure or a non-200 response.
	ErrFetch = errors.New("weather: fetch failed")
	// ErrMalformed reports a response body that is not a usable forecast.
	ErrMalformed = errors.New("weather: malformed forecast")
)

// Client handles forecast API interactions
type Client struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new forecast API client
func NewClient(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		Endpoint: endpoint,
		APIKey:   apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrFetch, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}
	return data, nil
}

// ForecastURL builds the request URL for a location. Minute, hourly, alert
// and flag sections are excluded; units are SI and text is English.
func (c *Client) ForecastURL(lat, lon float64) string {
	params := url.Values{}
	params.Set("exclude", "minutely,hourly,alerts,flags")
	params.Set("units", "si")
	params.Set("lang", "en")

	return fmt.Sprintf("%s/%s/%s,%s?%s",
		strings.TrimRight(c.Endpoint, "/"),
		url.PathEscape(c.APIKey),
		formatCoord(lat),
		formatCoord(lon),
		params.Encode(),
	)
}

// Fetch retrieves and validates the forecast for a lat/lon
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*Forecast, error) {
	data, err := c.get(ctx, c.ForecastURL(lat, lon))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ForecastResponse represents the forecast API response
type ForecastResponse struct {
	Currently *DataPoint `json:"currently"`
	Daily     *struct {
		Data []DataPoint `json:"data"`
	} `json:"daily"`
	Timezone string `json:"timezone"`
}

// DataPoint is a reading as sent by the API. Every field is optional on the
// wire; Parse decides which ones a reading needs.
type DataPoint struct {
	Time                *int64   `json:"time"`
	Summary             *string  `json:"summary"`
	Icon                *string  `json:"icon"`
	Temperature         *float64 `json:"temperature"`
	ApparentTemperature *float64 `json:"apparentTemperature"`
	TemperatureLow      *float64 `json:"temperatureLow"`
	TemperatureHigh     *float64 `json:"temperatureHigh"`
	Pressure            *float64 `json:"pressure"`
	WindSpeed           *float64 `json:"windSpeed"`
	Visibility          *float64 `json:"visibility"`
	Ozone               *float64 `json:"ozone"`
	PrecipProbability   *float64 `json:"precipProbability"`
}

// Parse decodes a forecast response body. Missing sections or fields, fewer
// than MinDailyReadings days and unknown time zones are reported as
// ErrMalformed naming the offending field.
func Parse(data []byte) (*Forecast, error) {
	var resp ForecastResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if resp.Timezone == "" {
		return nil, missing("timezone")
	}
	loc, err := time.LoadLocation(resp.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrMalformed, resp.Timezone, err)
	}

	if resp.Currently == nil {
		return nil, missing("currently")
	}
	current, err := resp.Currently.current()
	if err != nil {
		return nil, err
	}

	if resp.Daily == nil {
		return nil, missing("daily")
	}
	if len(resp.Daily.Data) < MinDailyReadings {
		return nil, fmt.Errorf("%w: daily.data has %d entries, need %d",
			ErrMalformed, len(resp.Daily.Data), MinDailyReadings)
	}

	daily := make([]Reading, 0, len(resp.Daily.Data))
	for i, dp := range resp.Daily.Data {
		r, err := dp.day(fmt.Sprintf("daily.data[%d]", i))
		if err != nil {
			return nil, err
		}
		daily = append(daily, r)
	}

	return &Forecast{
		Currently: current,
		Daily:     daily,
		Timezone:  resp.Timezone,
		Location:  loc,
	}, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformed, field)
}

// fields collects the first missing field while copying values out.
type fields struct {
	prefix string
	err    error
}

func (f *fields) str(name string, v *string) string {
	if v == nil {
		f.fail(name)
		return ""
	}
	return *v
}

func (f *fields) num(name string, v *float64) float64 {
	if v == nil {
		f.fail(name)
		return 0
	}
	return *v
}

func (f *fields) fail(name string) {
	if f.err == nil {
		f.err = missing(f.prefix + "." + name)
	}
}

func (dp DataPoint) current() (Reading, error) {
	f := fields{prefix: "currently"}
	r := Reading{
		Summary:             f.str("summary", dp.Summary),
		Icon:                f.str("icon", dp.Icon),
		Temperature:         f.num("temperature", dp.Temperature),
		ApparentTemperature: f.num("apparentTemperature", dp.ApparentTemperature),
		Pressure:            f.num("pressure", dp.Pressure),
		WindSpeed:           f.num("windSpeed", dp.WindSpeed),
		Visibility:          f.num("visibility", dp.Visibility),
		Ozone:               f.num("ozone", dp.Ozone),
		PrecipProbability:   f.num("precipProbability", dp.PrecipProbability),
	}
	if dp.Time != nil {
		r.Time = *dp.Time
	}
	return r, f.err
}

func (dp DataPoint) day(prefix string) (Reading, error) {
	f := fields{prefix: prefix}
	if dp.Time == nil {
		f.fail("time")
	}
	r := Reading{
		Icon:            f.str("icon", dp.Icon),
		TemperatureLow:  f.num("temperatureLow", dp.TemperatureLow),
		TemperatureHigh: f.num("temperatureHigh", dp.TemperatureHigh),
	}
	if f.err != nil {
		return Reading{}, f.err
	}
	r.Time = *dp.Time
	if dp.Summary != nil {
		r.Summary = *dp.Summary
	}
	if dp.PrecipProbability != nil {
		r.PrecipProbability = *dp.PrecipProbability
	}
	return r, nil
}
