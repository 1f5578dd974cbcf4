package display

import (
	"image"
)

// Memory keeps rendered frames in memory. It backs headless runs and tests.
type Memory struct {
	bounds  image.Rectangle
	palette Palette
	frames  []*image.Paletted
}

// NewMemory returns an in-memory panel of the given size.
func NewMemory(width, height int, accent Colour) *Memory {
	return &Memory{
		bounds:  image.Rect(0, 0, width, height),
		palette: NewPalette(accent),
	}
}

func (m *Memory) Bounds() image.Rectangle { return m.bounds }
func (m *Memory) Palette() Palette { return m.palette }
func (m *Memory) Close() error { return nil }

// Render stores a copy of img.
func (m *Memory) Render(img *image.Paletted) error {
	if err := checkFrame(m, img); err != nil {
		return err
	}
	frame := image.NewPaletted(img.Rect, img.Palette)
	copy(frame.Pix, img.Pix)
	m.frames = append(m.frames, frame)
	return nil
}

// Frames returns every frame rendered so far.
func (m *Memory) Frames() []*image.Paletted { return m.frames }

// Last returns the most recent frame, or nil.
func (m *Memory) Last() *image.Paletted {
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[len(m.frames)-1]
}
