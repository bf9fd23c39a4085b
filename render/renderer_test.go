package render

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log"
	"testing"

	"github.com/bodgit/tilesheet/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	opaqueBlack = color.RGBA{0, 0, 0, 0xff}
	opaqueWhite = color.RGBA{0xff, 0xff, 0xff, 0xff}
	transparent = color.RGBA{}
)

func testRenderer() *Renderer {
	return New(DefaultStyle(), log.New(io.Discard, "", 0))
}

func testFrame(sheet, tileMap Surface) Frame {
	return Frame{
		Sheet:   sheet,
		Map:     tileMap,
		Tile:    geometry.Size{Width: 32, Height: 32},
		MapSize: geometry.Size{Width: 320, Height: 320},
	}
}

type brokenSurface struct {
	Canvas
}

var errNoContext = errors.New("no context")

func (s *brokenSurface) Context() (Context, error) {
	return nil, errNoContext
}

func TestRenderMapGrid(t *testing.T) {
	sheet, tileMap := NewCanvas(318, 318), NewCanvas(320, 320)
	f := testFrame(sheet, tileMap)
	f.ShowGrid = true

	require.Nil(t, testRenderer().Render(f))

	m := tileMap.Image()
	var vertical, horizontal []int
	for x := 0; x < 320; x++ {
		if m.RGBAAt(x, 5) == opaqueBlack {
			vertical = append(vertical, x)
		}
	}
	for y := 0; y < 320; y++ {
		if m.RGBAAt(5, y) == opaqueBlack {
			horizontal = append(horizontal, y)
		}
	}

	want := []int{32, 64, 96, 128, 160, 192, 224, 256, 288}
	assert.Equal(t, want, vertical)
	assert.Equal(t, want, horizontal)
	assert.Equal(t, opaqueWhite, m.RGBAAt(0, 0))
	assert.Equal(t, opaqueWhite, m.RGBAAt(319, 319))
}

func TestRenderMapWithoutGrid(t *testing.T) {
	sheet, tileMap := NewCanvas(318, 318), NewCanvas(320, 320)

	require.Nil(t, testRenderer().Render(testFrame(sheet, tileMap)))

	m := tileMap.Image()
	for y := 0; y < 320; y += 7 {
		for x := 0; x < 320; x += 7 {
			assert.Equal(t, opaqueWhite, m.RGBAAt(x, y))
		}
	}
	assert.Equal(t, opaqueWhite, m.RGBAAt(32, 32))
}

func TestRenderMapGridUsesMapSize(t *testing.T) {
	sheet, tileMap := NewCanvas(318, 318), NewCanvas(320, 320)
	f := testFrame(sheet, tileMap)
	f.ShowGrid = true
	f.MapSize = geometry.Size{Width: 64, Height: 64}

	require.Nil(t, testRenderer().Render(f))

	m := tileMap.Image()
	assert.Equal(t, opaqueBlack, m.RGBAAt(32, 10))
	assert.Equal(t, opaqueWhite, m.RGBAAt(32, 100))
	assert.Equal(t, opaqueWhite, m.RGBAAt(64, 10))
}

func TestRenderSheetGridAlwaysDrawn(t *testing.T) {
	sheet, tileMap := NewCanvas(318, 318), NewCanvas(320, 320)

	require.Nil(t, testRenderer().Render(testFrame(sheet, tileMap)))

	m := sheet.Image()
	assert.Equal(t, opaqueBlack, m.RGBAAt(32, 10))
	assert.Equal(t, opaqueBlack, m.RGBAAt(288, 10))
	assert.Equal(t, opaqueBlack, m.RGBAAt(10, 288))
	assert.Equal(t, transparent, m.RGBAAt(0, 10))
	assert.Equal(t, transparent, m.RGBAAt(10, 10))
}

func TestRenderSheetImageAndSelection(t *testing.T) {
	sheet, tileMap := NewCanvas(64, 64), NewCanvas(320, 320)

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{0xff, 0, 0, 0xff})
		}
	}

	f := testFrame(sheet, tileMap)
	f.Image = img
	f.Selected = &geometry.Point{X: 32, Y: 0}

	require.Nil(t, testRenderer().Render(f))

	m := sheet.Image()
	red := color.RGBA{0xff, 0, 0, 0xff}
	assert.Equal(t, red, m.RGBAAt(5, 5))
	assert.Equal(t, red, m.RGBAAt(5, 40))
	assert.Equal(t, opaqueBlack, m.RGBAAt(32, 40))

	highlighted := m.RGBAAt(40, 5)
	assert.NotEqual(t, red, highlighted)
	assert.Equal(t, uint8(0xff), highlighted.A)
	assert.True(t, highlighted.B > 0x80)
}

func TestRenderSelectionBeyondImage(t *testing.T) {
	sheet, tileMap := NewCanvas(64, 64), NewCanvas(320, 320)
	f := testFrame(sheet, tileMap)
	f.Selected = &geometry.Point{X: 48, Y: 48}

	require.Nil(t, testRenderer().Render(f))

	assert.NotEqual(t, transparent, sheet.Image().RGBAAt(63, 63))
}

func TestRenderClearsPreviousSheet(t *testing.T) {
	sheet, tileMap := NewCanvas(64, 64), NewCanvas(320, 320)
	f := testFrame(sheet, tileMap)
	f.Selected = &geometry.Point{X: 0, Y: 0}

	r := testRenderer()
	require.Nil(t, r.Render(f))
	assert.NotEqual(t, transparent, sheet.Image().RGBAAt(5, 5))

	f.Selected = nil
	require.Nil(t, r.Render(f))
	assert.Equal(t, transparent, sheet.Image().RGBAAt(5, 5))
}

func TestRenderMissingSurface(t *testing.T) {
	tables := []struct {
		name  string
		sheet Surface
		tmap  Surface
		err   error
	}{
		{"no map", NewCanvas(32, 32), nil, ErrNoMapSurface},
		{"no sheet", nil, NewCanvas(32, 32), ErrNoSheetSurface},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			err := testRenderer().Render(testFrame(table.sheet, table.tmap))
			assert.Equal(t, table.err, err)

			for _, s := range []Surface{table.sheet, table.tmap} {
				if c, ok := s.(*Canvas); ok {
					assert.Equal(t, transparent, c.Image().RGBAAt(0, 0))
				}
			}
		})
	}
}

func TestRenderNoContextAbortsBoth(t *testing.T) {
	tileMap := NewCanvas(320, 320)
	sheet := &brokenSurface{}
	sheet.Resize(64, 64)

	err := testRenderer().Render(testFrame(sheet, tileMap))
	assert.True(t, errors.Is(err, errNoContext))
	assert.Equal(t, transparent, tileMap.Image().RGBAAt(0, 0))
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(10, 10)
	assert.Equal(t, image.Rect(0, 0, 10, 10), c.Bounds())
	c.Resize(40, 20)
	assert.Equal(t, image.Rect(0, 0, 40, 20), c.Bounds())
	c.Resize(-1, 5)
	assert.Equal(t, image.Rect(0, 0, 0, 5), c.Bounds())
}
