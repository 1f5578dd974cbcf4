package display

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// PNG writes each frame to a file instead of a panel, for previews on a
// machine without the hardware.
type PNG struct {
	Path    string
	bounds  image.Rectangle
	palette Palette
}

// NewPNG returns a preview display the size of an Inky wHAT.
func NewPNG(path string, accent Colour) *PNG {
	return &PNG{
		Path:    path,
		bounds:  image.Rect(0, 0, Width, Height),
		palette: NewPalette(accent),
	}
}

func (p *PNG) Bounds() image.Rectangle { return p.bounds }
func (p *PNG) Palette() Palette { return p.palette }
func (p *PNG) Close() error { return nil }

// Render writes img to Path.
func (p *PNG) Render(img *image.Paletted) error {
	if err := checkFrame(p, img); err != nil {
		return err
	}
	if err := gg.SavePNG(p.Path, img); err != nil {
		return fmt.Errorf("display: writing %s: %w", p.Path, err)
	}
	return nil
}
