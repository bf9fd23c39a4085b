/*
Package export writes rendered previews and tiles out as PNG images.

An image can optionally be reduced to a palette of at most a given number of
colors using median cut quantization before it is written.
*/
package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/bodgit/tilesheet/geometry"
	"github.com/ericpauley/go-quantize/quantize"
)

// MaxColors is the largest palette a PNG can hold.
const MaxColors = 256

var errColors = errors.New("export: palette size out of range")

// Paletted converts m to a paletted image of no more than colors entries.
// An image that already fits is converted without quantizing.
func Paletted(m image.Image, colors int) (*image.Paletted, error) {
	if colors < 1 || colors > MaxColors {
		return nil, errColors
	}

	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok {
			pm = image.NewPaletted(b, cp)
			draw.Draw(pm, b, m, b.Min, draw.Src)
		}
	}

	if pm == nil || len(pm.Palette) > colors {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm, nil
}

// Encode writes m to w as a PNG. If colors is greater than zero the image is
// first reduced to at most that many colors.
func Encode(w io.Writer, m image.Image, colors int) error {
	if colors > 0 {
		pm, err := Paletted(m, colors)
		if err != nil {
			return err
		}
		m = pm
	}

	e := png.Encoder{CompressionLevel: png.BestCompression}
	return e.Encode(w, m)
}

// Tile returns a copy of the tile of the given size at origin in m. Any part
// of the tile beyond the edge of m is transparent.
func Tile(m image.Image, origin geometry.Point, size geometry.Size) *image.NRGBA {
	r := geometry.TileRect(origin, size)
	t := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(t, t.Rect, m, m.Bounds().Min.Add(r.Min), draw.Src)
	return t
}
