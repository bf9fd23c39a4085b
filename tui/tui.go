/*
Package tui is an interactive terminal front end for a tilesheet.Editor.

The tile map preview is drawn on the left and the tile sheet on the right.
Each terminal cell shows two vertically stacked samples using a half block,
so at scale n a cell covers n pixels across and 2n pixels down.
*/
package tui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strconv"

	"github.com/bodgit/tilesheet"
	"github.com/bodgit/tilesheet/render"
	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

const (
	gutter   = 2
	maxScale = 64
)

var backdrop = color.RGBA{0x30, 0x30, 0x30, 0xff}

// View draws an editor onto a terminal screen and feeds it input.
type View struct {
	screen tcell.Screen
	editor *tilesheet.Editor
	logger *log.Logger

	sheet *render.Canvas
	tmap  *render.Canvas

	scale   int
	message string
	pressed bool

	// Visible cells of the sheet preview, where its first cell is and its
	// size in samples
	sheetArea   image.Rectangle
	sheetOrigin image.Point
	samples     image.Point
}

// New attaches fresh surfaces to editor and returns a View drawing them on
// screen, which must already be initialised.
func New(screen tcell.Screen, editor *tilesheet.Editor, scale int, logger *log.Logger) *View {
	if scale < 1 {
		scale = 1
	}

	v := &View{
		screen: screen,
		editor: editor,
		logger: logger,
		sheet:  render.NewCanvas(0, 0),
		tmap:   render.NewCanvas(0, 0),
		scale:  scale,
	}

	editor.OnRender(func(err error) {
		v.message = ""
		if err != nil {
			v.message = err.Error()
		}
		v.Draw()
	})
	editor.SetMapSurface(v.tmap)
	editor.SetSheetSurface(v.sheet)

	return v
}

// Scale returns the number of pixels across each terminal cell.
func (v *View) Scale() int {
	return v.scale
}

func rgb(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// sample shrinks m to one pixel per half cell, composited over bg.
func (v *View) sample(m image.Image, bg color.Color) *image.RGBA {
	b := m.Bounds()
	w := (b.Dx() + v.scale - 1) / v.scale
	h := (b.Dy() + v.scale - 1) / v.scale

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	if !b.Empty() {
		xdraw.NearestNeighbor.Scale(dst, dst.Rect, m, b, xdraw.Over, nil)
	}
	return dst
}

// blit draws m with its top-left cell at (x0, y0) and returns the cell area
// used, clipped to the screen above the status line.
func (v *View) blit(x0, y0 int, m *image.RGBA) image.Rectangle {
	sw, sh := v.screen.Size()
	rows := (m.Rect.Dy() + 1) / 2

	area := image.Rect(x0, y0, x0+m.Rect.Dx(), y0+rows).Intersect(image.Rect(0, 0, sw, sh-1))
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := (y - y0) * 2
		for x := area.Min.X; x < area.Max.X; x++ {
			col := x - x0
			top := m.RGBAAt(col, row)
			bottom := color.Color(backdrop)
			if row+1 < m.Rect.Dy() {
				bottom = m.RGBAAt(col, row+1)
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			v.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	return area
}

func (v *View) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *View) status() string {
	tile := v.editor.TileSize()
	size := v.editor.MapSize()

	grid := "off"
	if v.editor.ShowGrid() {
		grid = "on"
	}

	selected := "none"
	if p, ok := v.editor.Selected(); ok {
		selected = fmt.Sprintf("%d,%d", p.X, p.Y)
	}

	s := fmt.Sprintf("tile %dx%d  map %dx%d  grid %s  selected %s  scale 1:%d", tile.Width, tile.Height, size.Width, size.Height, grid, selected, v.scale)
	if v.message != "" {
		s += "  " + v.message
	}
	return s
}

// Draw repaints the whole screen from the editor surfaces.
func (v *View) Draw() {
	v.screen.Clear()
	_, sh := v.screen.Size()

	label := tcell.StyleDefault.Bold(true)

	mapCells := v.sample(v.tmap.Image(), backdrop)
	sheetCells := v.sample(v.sheet.Image(), backdrop)

	sheetX := mapCells.Rect.Dx() + gutter

	v.text(0, 0, "Tile map", label)
	v.text(sheetX, 0, "Tile sheet", label)
	if m, ok := v.editor.Image(); ok {
		v.text(sheetX+len("Tile sheet")+1, 0, fmt.Sprintf("%s %dx%d", m.Name, m.Width, m.Height), tcell.StyleDefault)
	}

	v.blit(0, 1, mapCells)
	v.sheetOrigin = image.Pt(sheetX, 1)
	v.sheetArea = v.blit(v.sheetOrigin.X, v.sheetOrigin.Y, sheetCells)
	v.samples = sheetCells.Rect.Size()

	v.text(0, sh-1, v.status(), tcell.StyleDefault.Reverse(true))

	v.screen.Show()
}

// pixel maps a sample index back to the pixel at the centre of the span it
// covers.
func pixel(i, samples, extent int) int {
	return (2*i + 1) * extent / (2 * samples)
}

// click turns a press at cell (x, y) into a tile selection if it lands on
// the sheet preview.
func (v *View) click(x, y int) bool {
	if !image.Pt(x, y).In(v.sheetArea) {
		return false
	}

	b := v.sheet.Bounds()
	col, row := x-v.sheetOrigin.X, (y-v.sheetOrigin.Y)*2

	if col >= v.samples.X || row >= v.samples.Y {
		return false
	}

	p := v.editor.Click(pixel(col, v.samples.X, b.Dx()), pixel(row, v.samples.Y, b.Dy()))
	v.logger.Printf("Selected tile at %d,%d\n", p.X, p.Y)
	return true
}

func (v *View) zoom(scale int) {
	if scale < 1 || scale > maxScale {
		return
	}
	v.scale = scale
	v.Draw()
}

func (v *View) key(r rune) {
	tile := v.editor.TileSize()
	size := v.editor.MapSize()

	switch r {
	case 'g':
		v.editor.SetShowGrid(!v.editor.ShowGrid())
	case '[':
		v.editor.InputTileWidth(strconv.Itoa(tile.Width - 1))
	case ']':
		v.editor.InputTileWidth(strconv.Itoa(tile.Width + 1))
	case '{':
		v.editor.InputTileHeight(strconv.Itoa(tile.Height - 1))
	case '}':
		v.editor.InputTileHeight(strconv.Itoa(tile.Height + 1))
	case ',':
		v.editor.InputMapWidth(strconv.Itoa(size.Width - tile.Width))
	case '.':
		v.editor.InputMapWidth(strconv.Itoa(size.Width + tile.Width))
	case ';':
		v.editor.InputMapHeight(strconv.Itoa(size.Height - tile.Height))
	case '\'':
		v.editor.InputMapHeight(strconv.Itoa(size.Height + tile.Height))
	case '-':
		v.zoom(v.scale + 1)
	case '=', '+':
		v.zoom(v.scale - 1)
	}
}

// HandleEvent applies a single terminal event and reports whether the user
// asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.Draw()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
			v.key(ev.Rune())
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !v.pressed {
			x, y := ev.Position()
			v.click(x, y)
		}
		v.pressed = down
	}
	return false
}

// Run processes terminal events until the user quits or ctx is done.
func (v *View) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	v.Draw()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if v.HandleEvent(ev) {
				return nil
			}
		}
	}
}
