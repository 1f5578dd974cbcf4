package render

import (
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// Font sizes in pixels.
const (
	LargeFontSize  = 20
	MediumFontSize = 17
	SmallFontSize  = 15
)

// Faces are the three text sizes used on the panel.
type Faces struct {
	Large  font.Face
	Medium font.Face
	Small  font.Face
}

// DefaultFaces uses the embedded Go Bold font.
func DefaultFaces() (*Faces, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded font: %w", err)
	}
	return newFaces(func(size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
}

// LoadFaces loads a TrueType font file, or the default font when path is empty.
func LoadFaces(path string) (*Faces, error) {
	if path == "" {
		return DefaultFaces()
	}
	return newFaces(func(size float64) (font.Face, error) {
		face, err := gg.LoadFontFace(path, size)
		if err != nil {
			return nil, fmt.Errorf("loading font %s: %w", path, err)
		}
		return face, nil
	})
}

func newFaces(load func(size float64) (font.Face, error)) (*Faces, error) {
	large, err := load(LargeFontSize)
	if err != nil {
		return nil, err
	}
	medium, err := load(MediumFontSize)
	if err != nil {
		return nil, err
	}
	small, err := load(SmallFontSize)
	if err != nil {
		return nil, err
	}
	return &Faces{Large: large, Medium: medium, Small: small}, nil
}
