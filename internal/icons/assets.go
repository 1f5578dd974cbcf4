package icons

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
	"strings"
)

// ErrMissingAsset reports a category without a loaded bitmap.
var ErrMissingAsset = errors.New("icons: missing icon asset")

// Pattern matches icon files; the part after "icon-" names the category.
const Pattern = "icon-*.png"

// Asset is a decoded icon and its transparency mask (same bounds).
type Asset struct {
	Image *image.Paletted
	Mask  *image.Alpha
}

// Width returns the icon width in pixels.
func (a *Asset) Width() int { return a.Image.Bounds().Dx() }

// Height returns the icon height in pixels.
func (a *Asset) Height() int { return a.Image.Bounds().Dy() }

// Set holds one asset per category.
type Set map[Category]*Asset

// Asset returns the asset drawn for c.
func (s Set) Asset(c Category) (*Asset, error) {
	a, ok := s[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingAsset, c)
	}
	return a, nil
}

// ForCode classifies a forecast icon code and returns its asset.
func (s Set) ForCode(code string) (Category, *Asset, error) {
	c, err := Lookup(code)
	if err != nil {
		return "", nil, err
	}
	a, err := s.Asset(c)
	if err != nil {
		return "", nil, err
	}
	return c, a, nil
}

// Load decodes every icon-<category>.png at the root of fsys and masks it
// to the allowed palette indices. Every category of the table must have a
// file; extra files are loaded too.
func Load(fsys fs.FS, allowed []uint8) (Set, error) {
	names, err := fs.Glob(fsys, Pattern)
	if err != nil {
		return nil, err
	}

	set := make(Set, len(names))
	for _, name := range names {
		img, err := decode(fsys, name)
		if err != nil {
			return nil, err
		}
		set[categoryOf(name)] = &Asset{
			Image: img,
			Mask:  Mask(img, allowed),
		}
	}

	for _, c := range Categories() {
		if _, ok := set[c]; !ok {
			return nil, fmt.Errorf("%w: no icon-%s.png", ErrMissingAsset, c)
		}
	}
	return set, nil
}

func categoryOf(name string) Category {
	base := strings.TrimSuffix(path.Base(name), ".png")
	return Category(strings.TrimPrefix(base, "icon-"))
}

func decode(fsys fs.FS, name string) (*image.Paletted, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	p, ok := img.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("%s: expected a paletted PNG, got %T", name, img)
	}
	return p, nil
}
