package render

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// measure returns the advance width and line height of s.
func measure(face font.Face, s string) (w, h int) {
	m := face.Metrics()
	return font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// text draws s with its top-left corner at (x, y).
func (r *Renderer) text(dst draw.Image, face font.Face, x, y int, s string, index uint8) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.palette.Color(index)),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// centred draws s horizontally centred in a span of width w.
func (r *Renderer) centred(dst draw.Image, face font.Face, w, y int, s string, index uint8) {
	tw, _ := measure(face, s)
	r.text(dst, face, (w-tw)/2, y, s, index)
}

func (r *Renderer) fill(dst draw.Image, rect image.Rectangle, index uint8) {
	draw.Draw(dst, rect, image.NewUniform(r.palette.Color(index)), image.Point{}, draw.Src)
}

// blit copies the palette indices of src onto dst with src's origin at pt.
func blit(dst, src *image.Paletted, pt image.Point) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(pt).Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		s := src.PixOffset(src.Rect.Min.X+r.Min.X-pt.X, src.Rect.Min.Y+y-pt.Y)
		d := dst.PixOffset(r.Min.X, y)
		copy(dst.Pix[d:d+r.Dx()], src.Pix[s:s+r.Dx()])
	}
}

// Rotate180 returns img turned upside down.
func Rotate180(img *image.Paletted) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(b, img.Palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetColorIndex(b.Max.X-1-(x-b.Min.X), b.Max.Y-1-(y-b.Min.Y), img.ColorIndexAt(x, y))
		}
	}
	return out
}
