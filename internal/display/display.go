// Package display abstracts the panel a frame is drawn on. Drawing code only
// needs the panel bounds and its palette; Render is the single side effect.
package display

import (
	"fmt"
	"image"
	"image/color"
)

// Palette indices shared by every display. Icon bitmaps use the same
// convention so they can be copied index for index.
const (
	White  uint8 = 0 // inverse
	Black  uint8 = 1 // base
	Accent uint8 = 2
)

// Inky wHAT panel size.
const (
	Width  = 400
	Height = 300
)

// Colour is the accent colour of a panel. It implements flag.Value.
type Colour string

const (
	Red    Colour = "red"
	Yellow Colour = "yellow"
	Mono   Colour = "black"
)

// Colours lists the accepted accent colours.
var Colours = []Colour{Red, Mono, Yellow}

func (c *Colour) String() string { return string(*c) }

// Set parses a colour name.
func (c *Colour) Set(s string) error {
	for _, known := range Colours {
		if string(known) == s {
			*c = known
			return nil
		}
	}
	return fmt.Errorf("unknown colour %q: expected red, black or yellow", s)
}

// RGBA returns the accent ink.
func (c Colour) RGBA() color.RGBA {
	switch c {
	case Red:
		return color.RGBA{R: 255, A: 255}
	case Yellow:
		return color.RGBA{R: 255, G: 255, A: 255}
	default:
		return color.RGBA{A: 255}
	}
}

// Palette is the colour table of a panel, indexed by White, Black and Accent.
type Palette color.Palette

// NewPalette returns the three-colour palette for an accent colour.
func NewPalette(accent Colour) Palette {
	return Palette{
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		color.RGBA{A: 255},
		accent.RGBA(),
	}
}

// Indices returns every palette index the panel can show.
func (p Palette) Indices() []uint8 {
	out := make([]uint8, len(p))
	for i := range p {
		out[i] = uint8(i)
	}
	return out
}

// Color returns the colour at index i.
func (p Palette) Color(i uint8) color.Color { return p[i] }

// Display is a panel that shows one paletted frame at a time.
type Display interface {
	Bounds() image.Rectangle
	Palette() Palette
	Render(img *image.Paletted) error
	Close() error
}

func checkFrame(d Display, img *image.Paletted) error {
	if img.Bounds() != d.Bounds() {
		return fmt.Errorf("display: frame is %v, panel is %v", img.Bounds(), d.Bounds())
	}
	return nil
}
