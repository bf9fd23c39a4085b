package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineCount(t *testing.T) {
	tables := []struct {
		extent, tile, count int
	}{
		{320, 32, 10},
		{318, 32, 9},
		{31, 32, 0},
		{32, 32, 1},
		{100, 7, 14},
	}

	for _, table := range tables {
		assert.Equal(t, table.count, LineCount(table.extent, table.tile), "%d/%d", table.extent, table.tile)
	}
}

func TestLinesInsideSurface(t *testing.T) {
	for extent := 1; extent <= 200; extent++ {
		for tile := 1; tile <= 40; tile++ {
			lines := Lines(extent, tile)
			for i, p := range lines {
				assert.True(t, p > 0 && p < extent, "line %d outside (0, %d)", p, extent)
				assert.Equal(t, 0, p%tile)
				assert.Equal(t, (i+1)*tile, p)
			}
			// Every multiple strictly inside the surface is present
			assert.Equal(t, (extent-1)/tile, len(lines), "extent %d tile %d", extent, tile)
		}
	}
}

func TestLinesMapScenario(t *testing.T) {
	assert.Equal(t, []int{32, 64, 96, 128, 160, 192, 224, 256, 288}, Lines(320, 32))
}

func TestLinesNoneWhenTileTooBig(t *testing.T) {
	assert.Empty(t, Lines(16, 32))
	assert.Empty(t, Lines(32, 32))
}

func TestTileOrigin(t *testing.T) {
	tables := []struct {
		px, py int
		tile   Size
		want   Point
	}{
		{45, 70, Size{32, 32}, Point{32, 64}},
		{0, 0, Size{32, 32}, Point{0, 0}},
		{31, 31, Size{32, 32}, Point{0, 0}},
		{32, 32, Size{32, 32}, Point{32, 32}},
		{17, 9, Size{8, 16}, Point{16, 0}},
		{1000, 1000, Size{32, 32}, Point{992, 992}},
		{-1, -33, Size{32, 32}, Point{-32, -64}},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, TileOrigin(table.px, table.py, table.tile))
	}
}

func TestTileOriginContainsPointer(t *testing.T) {
	for _, tile := range []Size{{1, 1}, {8, 8}, {16, 24}, {32, 32}, {7, 13}} {
		for px := 0; px < 100; px += 3 {
			for py := 0; py < 100; py += 5 {
				p := TileOrigin(px, py, tile)
				assert.Equal(t, 0, p.X%tile.Width)
				assert.Equal(t, 0, p.Y%tile.Height)
				assert.True(t, p.X <= px && px < p.X+tile.Width)
				assert.True(t, p.Y <= py && py < p.Y+tile.Height)
			}
		}
	}
}

func TestTileIndex(t *testing.T) {
	x, y := TileIndex(45, 70, Size{32, 32})
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, y)
}

func TestTileRect(t *testing.T) {
	assert.Equal(t, image.Rect(32, 64, 64, 96), TileRect(Point{32, 64}, Size{32, 32}))
}

func TestSizeValid(t *testing.T) {
	assert.True(t, Size{1, 1}.Valid())
	assert.False(t, Size{0, 1}.Valid())
	assert.False(t, Size{1, -1}.Valid())
}
