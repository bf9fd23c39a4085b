package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/bodgit/tilesheet/geometry"
)

var (
	// ErrNoSheetSurface is returned when no tile-sheet surface is attached.
	ErrNoSheetSurface = errors.New("render: no tile sheet surface")
	// ErrNoMapSurface is returned when no tile-map surface is attached.
	ErrNoMapSurface = errors.New("render: no tile map surface")
)

// Style holds the colors used when rendering.
type Style struct {
	Grid       color.Color
	Highlight  color.Color
	Background color.Color
}

// DefaultStyle returns black grid lines, a translucent cyan selection and a
// white map background.
func DefaultStyle() Style {
	return Style{
		Grid:       color.Black,
		Highlight:  color.NRGBA{0x34, 0xbd, 0xe3, 0xaa},
		Background: color.White,
	}
}

// Frame is a snapshot of everything a render pass reads.
type Frame struct {
	Sheet    Surface
	Map      Surface
	Image    image.Image
	Tile     geometry.Size
	MapSize  geometry.Size
	ShowGrid bool
	Selected *geometry.Point
}

// Renderer redraws both surfaces from a Frame.
type Renderer struct {
	style  Style
	logger *log.Logger
}

// New returns a Renderer drawing with style and reporting diagnostics to
// logger.
func New(style Style, logger *log.Logger) *Renderer {
	return &Renderer{
		style:  style,
		logger: logger,
	}
}

func (r *Renderer) contexts(f Frame) (Context, Context, error) {
	if f.Map == nil {
		return nil, nil, ErrNoMapSurface
	}
	if f.Sheet == nil {
		return nil, nil, ErrNoSheetSurface
	}

	sheet, err := f.Sheet.Context()
	if err != nil {
		return nil, nil, fmt.Errorf("render: tile sheet context: %w", err)
	}
	tileMap, err := f.Map.Context()
	if err != nil {
		return nil, nil, fmt.Errorf("render: tile map context: %w", err)
	}

	return sheet, tileMap, nil
}

// Render performs a full redraw of both surfaces. If either surface or its
// context is unavailable nothing is drawn and the error is returned.
func (r *Renderer) Render(f Frame) error {
	sheet, tileMap, err := r.contexts(f)
	if err != nil {
		r.logger.Println(err)
		return err
	}

	sb := f.Sheet.Bounds()
	sheet.Clear(sb)

	mb := f.Map.Bounds()
	tileMap.Paint(mb, r.style.Background)

	if f.Image != nil {
		sheet.DrawImage(f.Image, image.Point{})
	}

	// The sheet grid is always drawn
	for _, x := range geometry.Lines(sb.Dx(), f.Tile.Width) {
		sheet.VLine(x, 0, sb.Dy(), r.style.Grid)
	}
	for _, y := range geometry.Lines(sb.Dy(), f.Tile.Height) {
		sheet.HLine(y, 0, sb.Dx(), r.style.Grid)
	}

	if f.Selected != nil {
		sheet.FillRect(geometry.TileRect(*f.Selected, f.Tile), r.style.Highlight)
	}

	if f.ShowGrid {
		for _, x := range geometry.Lines(f.MapSize.Width, f.Tile.Width) {
			tileMap.VLine(x, 0, f.MapSize.Height, r.style.Grid)
		}
		for _, y := range geometry.Lines(f.MapSize.Height, f.Tile.Height) {
			tileMap.HLine(y, 0, f.MapSize.Width, r.style.Grid)
		}
	}

	return nil
}
