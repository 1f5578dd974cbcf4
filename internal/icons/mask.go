package icons

import (
	"image"
	"image/color"
	"slices"
)

// Mask builds a transparency mask for src. A pixel is opaque (255) when its
// palette index is one of allowed and fully transparent otherwise, so only
// colours the display can show are composited.
func Mask(src *image.Paletted, allowed []uint8) *image.Alpha {
	b := src.Bounds()
	mask := image.NewAlpha(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if slices.Contains(allowed, src.ColorIndexAt(x, y)) {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return mask
}

// Paste copies the palette indices of src onto dst at pt wherever mask is
// opaque. Indices are copied as-is: icon index 2 is the display's accent
// colour whatever RGB value the icon file gives it.
func Paste(dst, src *image.Paletted, mask *image.Alpha, pt image.Point) {
	sb := src.Bounds()
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			if mask.AlphaAt(x, y).A == 0 {
				continue
			}
			dx, dy := pt.X+x-sb.Min.X, pt.Y+y-sb.Min.Y
			if !image.Pt(dx, dy).In(dst.Rect) {
				continue
			}
			dst.SetColorIndex(dx, dy, src.ColorIndexAt(x, y))
		}
	}
}
