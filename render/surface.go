/*
Package render draws the tile-sheet and tile-map previews.

Drawing happens through a small 2D context abstraction so the renderer does
not care whether a surface is an in-memory raster or something the front end
provides. Every render is a full redraw of both surfaces.
*/
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is a resizable drawing target.
type Surface interface {
	Bounds() image.Rectangle
	Resize(width, height int)
	// Context returns a 2D drawing context for the surface, or an error if
	// one cannot be obtained.
	Context() (Context, error)
}

// Context draws onto a Surface. Coordinates are surface pixels.
type Context interface {
	// Clear resets r to fully transparent.
	Clear(r image.Rectangle)
	// Paint replaces r with c.
	Paint(r image.Rectangle, c color.Color)
	// FillRect composites c over r.
	FillRect(r image.Rectangle, c color.Color)
	// DrawImage composites m, unscaled, with its top-left corner at p.
	DrawImage(m image.Image, p image.Point)
	VLine(x, y0, y1 int, c color.Color)
	HLine(y, x0, x1 int, c color.Color)
}

// Canvas is an in-memory Surface backed by an RGBA raster.
type Canvas struct {
	m *image.RGBA
}

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := new(Canvas)
	c.Resize(width, height)
	return c
}

// Bounds returns the canvas extent, always anchored at (0, 0).
func (c *Canvas) Bounds() image.Rectangle {
	return c.m.Rect
}

// Resize discards the current contents, like resetting the dimensions of an
// HTML canvas does.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.m = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Context returns a drawing context for the canvas.
func (c *Canvas) Context() (Context, error) {
	return &rgbaContext{c.m}, nil
}

// Image returns the current contents of the canvas. The returned image is
// replaced on the next Resize.
func (c *Canvas) Image() *image.RGBA {
	return c.m
}

type rgbaContext struct {
	m *image.RGBA
}

func (ctx *rgbaContext) Clear(r image.Rectangle) {
	draw.Draw(ctx.m, r, image.Transparent, image.Point{}, draw.Src)
}

func (ctx *rgbaContext) Paint(r image.Rectangle, c color.Color) {
	draw.Draw(ctx.m, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (ctx *rgbaContext) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(ctx.m, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func (ctx *rgbaContext) DrawImage(m image.Image, p image.Point) {
	b := m.Bounds()
	draw.Draw(ctx.m, b.Sub(b.Min).Add(p), m, b.Min, draw.Over)
}

func (ctx *rgbaContext) VLine(x, y0, y1 int, c color.Color) {
	ctx.FillRect(image.Rect(x, y0, x+1, y1), c)
}

func (ctx *rgbaContext) HLine(y, x0, x1 int, c color.Color) {
	ctx.FillRect(image.Rect(x0, y, x1, y+1), c)
}
