// Package render lays a forecast out on a paletted frame: current
// conditions at the top, an icon bar, one tile per forecast day and a
// load timestamp in the bottom-left corner.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/swelljoe/wthr.ink/internal/display"
	"github.com/swelljoe/wthr.ink/internal/icons"
	"github.com/swelljoe/wthr.ink/internal/weather"
)

// Columns is the number of forecast day tiles.
const Columns = 3

// TimestampLayout formats the load time shown under the tiles.
const TimestampLayout = "15:04:05 02 Jan 2006"

const (
	summaryHeight = LargeFontSize * 2
	lineHeight    = LargeFontSize
	sectionGap    = 10
	margin        = 8
)

// ErrNoRoom is returned when the display is too small for the layout.
var ErrNoRoom = errors.New("render: display too small for layout")

// Renderer draws forecasts for one display.
type Renderer struct {
	bounds  image.Rectangle
	palette display.Palette
	faces   *Faces
	icons   icons.Set
}

// New returns a renderer for frames of the given size and palette.
func New(bounds image.Rectangle, palette display.Palette, faces *Faces, set icons.Set) *Renderer {
	return &Renderer{
		bounds:  bounds.Sub(bounds.Min),
		palette: palette,
		faces:   faces,
		icons:   set,
	}
}

// ForDisplay returns a renderer sized and coloured for d.
func ForDisplay(d display.Display, faces *Faces, set icons.Set) *Renderer {
	return New(d.Bounds(), d.Palette(), faces, set)
}

func (r *Renderer) canvas(w, h int) *image.Paletted {
	return image.NewPaletted(image.Rect(0, 0, w, h), color.Palette(r.palette))
}

// Compose draws fc onto a new canvas the size of the display. now is the
// load time printed in the forecast's zone. Nothing is returned unless
// every section drew.
func (r *Renderer) Compose(fc *weather.Forecast, now time.Time) (*image.Paletted, error) {
	if len(fc.Daily) < Columns {
		return nil, fmt.Errorf("%w: %d daily readings, need %d", weather.ErrMalformed, len(fc.Daily), Columns)
	}

	loc, err := fc.Zone()
	if err != nil {
		return nil, err
	}

	width, height := r.bounds.Dx(), r.bounds.Dy()
	img := r.canvas(width, height)

	used := r.drawCurrent(img, fc.Currently, 0)
	used, err = r.drawIconBar(img, fc.Currently, used)
	if err != nil {
		return nil, err
	}
	if used >= height {
		return nil, fmt.Errorf("%w: %d of %d rows used before the tiles", ErrNoRoom, used, height)
	}

	for i, rect := range TileRects(width, used, height, Columns) {
		tile := r.canvas(rect.Dx(), rect.Dy())
		if err := r.drawTile(tile, fc.Daily[i], loc); err != nil {
			return nil, fmt.Errorf("day %d: %w", i, err)
		}
		blit(img, tile, rect.Min)
	}

	stamp := "Data loaded at " + now.In(loc).Format(TimestampLayout)
	r.text(img, r.faces.Small, margin, height-SmallFontSize, stamp, display.Accent)

	return img, nil
}

// Frame composes fc and turns it upside down to match how the panel is
// mounted.
func (r *Renderer) Frame(fc *weather.Forecast, now time.Time) (*image.Paletted, error) {
	img, err := r.Compose(fc, now)
	if err != nil {
		return nil, err
	}
	return Rotate180(img), nil
}

// TileRects splits the band [top, bottom) of a width-wide canvas into n
// equal columns. Column i starts at i*width/n; the columns cover the band
// without gaps or overlap.
func TileRects(width, top, bottom, n int) []image.Rectangle {
	rects := make([]image.Rectangle, n)
	for i := range rects {
		rects[i] = image.Rect(i*width/n, top, (i+1)*width/n, bottom)
	}
	return rects
}
