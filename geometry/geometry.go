/*
Package geometry implements the arithmetic that maps a uniform tile grid onto
a pixel surface.

A grid is defined purely by the tile width and height; lines are placed at
every multiple of the tile size strictly inside the surface and a pointer
position is snapped to the top-left corner of the tile cell containing it.
*/
package geometry

import "image"

// Size is a width and height in pixels.
type Size struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Point is a pixel position on a surface.
type Point struct {
	X int
	Y int
}

// floorDiv rounds toward negative infinity, unlike the / operator
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// LineCount returns the number of whole tiles that fit along extent.
func LineCount(extent, tile int) int {
	return floorDiv(extent, tile)
}

// Lines returns the positions of the grid lines along extent. Neither 0 nor
// extent itself is included as both coincide with the surface border.
func Lines(extent, tile int) []int {
	n := LineCount(extent, tile)
	if n < 1 {
		return nil
	}
	lines := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		if p := i * tile; p < extent {
			lines = append(lines, p)
		}
	}
	return lines
}

// TileOrigin snaps the pointer offset (px, py) to the top-left corner of the
// tile cell that contains it. The result is not clipped to any image.
func TileOrigin(px, py int, tile Size) Point {
	col, row := TileIndex(px, py, tile)
	return Point{
		X: col * tile.Width,
		Y: row * tile.Height,
	}
}

// TileIndex returns the column and row of the tile cell containing (px, py).
func TileIndex(px, py int, tile Size) (int, int) {
	return floorDiv(px, tile.Width), floorDiv(py, tile.Height)
}

// TileRect returns the rectangle covered by the tile at origin.
func TileRect(origin Point, tile Size) image.Rectangle {
	return image.Rect(origin.X, origin.Y, origin.X+tile.Width, origin.Y+tile.Height)
}
