package render

import (
	"fmt"
	"image"
	"time"

	"github.com/swelljoe/wthr.ink/internal/display"
	"github.com/swelljoe/wthr.ink/internal/icons"
	"github.com/swelljoe/wthr.ink/internal/weather"
)

// drawCurrent draws the summary and the current metrics from top and
// returns the offset below them.
func (r *Renderer) drawCurrent(dst *image.Paletted, cur weather.Reading, top int) int {
	width := dst.Bounds().Dx()
	offset := top

	_, h := measure(r.faces.Large, cur.Summary)
	r.centred(dst, r.faces.Large, width, offset+(summaryHeight-h)/2, cur.Summary, display.Accent)
	offset += summaryHeight

	metrics := []string{
		fmt.Sprintf("Pressure %.1f", cur.Pressure),
		fmt.Sprintf("Wind speed %.1f", cur.WindSpeed),
		fmt.Sprintf("Visibility %.1f", cur.Visibility),
		fmt.Sprintf("Ozone %.1f", cur.Ozone),
	}
	for _, line := range metrics {
		r.centred(dst, r.faces.Medium, width, offset, line, display.Black)
		offset += lineHeight
	}
	return offset + sectionGap
}

// drawIconBar draws a dark band holding the temperatures, the chance of
// rain and the current icon. It returns the offset below the band.
func (r *Renderer) drawIconBar(dst *image.Paletted, cur weather.Reading, top int) (int, error) {
	_, icon, err := r.icons.ForCode(cur.Icon)
	if err != nil {
		return 0, fmt.Errorf("current conditions: %w", err)
	}
	width := dst.Bounds().Dx()
	ih := icon.Height()

	r.fill(dst, image.Rect(0, top, width, top+ih), display.Black)

	temp := fmt.Sprintf("%.1fC feels like %.1fC", cur.Temperature, cur.ApparentTemperature)
	_, th := measure(r.faces.Small, temp)
	r.text(dst, r.faces.Small, margin, top+(ih-th)/2, temp, display.White)

	precip := fmt.Sprintf("Precip. chance: %.0f%%", cur.PrecipProbability*100)
	pw, ph := measure(r.faces.Small, precip)
	r.text(dst, r.faces.Small, width-pw-margin, top+(ih-ph)/2, precip, display.White)

	icons.Paste(dst, icon.Image, icon.Mask, image.Pt((width-icon.Width())/2, top))
	return top + ih, nil
}

// drawTile draws one forecast day onto its own canvas: weekday, icon band
// and temperature range.
func (r *Renderer) drawTile(tile *image.Paletted, day weather.Reading, loc *time.Location) error {
	_, icon, err := r.icons.ForCode(day.Icon)
	if err != nil {
		return err
	}
	width := tile.Bounds().Dx()

	name := day.LocalTime(loc).Weekday().String()
	_, nh := measure(r.faces.Medium, name)
	r.centred(tile, r.faces.Medium, width, 0, name, display.Accent)

	ih := icon.Height()
	r.fill(tile, image.Rect(0, nh, width, nh+ih), display.Black)
	icons.Paste(tile, icon.Image, icon.Mask, image.Pt((width-icon.Width())/2, nh))

	temps := fmt.Sprintf("%.1fC to %.1fC", day.TemperatureLow, day.TemperatureHigh)
	r.centred(tile, r.faces.Medium, width, nh+ih, temps, display.Black)
	return nil
}
