/*
Package tilesheet is a library for slicing a tile sheet image into a grid of
fixed-size tiles, picking a tile from it and previewing a tile map of a given
size with the same grid.

The Editor holds all of the state. Every accepted change triggers a full
redraw of both the tile-sheet and the tile-map surfaces.
*/
package tilesheet

import (
	"errors"
	"log"

	"github.com/bodgit/tilesheet/geometry"
	"github.com/bodgit/tilesheet/render"
	"github.com/bodgit/tilesheet/upload"
)

// ErrNoSheetSurface is returned when an image is loaded before a tile-sheet
// surface has been attached.
var ErrNoSheetSurface = errors.New("tilesheet: no tile sheet surface")

const (
	// MaxDimension is the largest accepted tile or map dimension in pixels.
	MaxDimension = 1 << 15
	// MaxMapArea is the largest accepted tile map in pixels.
	MaxMapArea = 1 << 26
)

// Settings are the initial values of an Editor.
type Settings struct {
	Tile     geometry.Size
	Map      geometry.Size
	Sheet    geometry.Size // size of the tile-sheet surface before any image
	ShowGrid bool
}

// DefaultSettings returns 32x32 tiles on a 320x320 map with the grid hidden.
func DefaultSettings() Settings {
	return Settings{
		Tile:  geometry.Size{Width: 32, Height: 32},
		Map:   geometry.Size{Width: 32 * 10, Height: 32 * 10},
		Sheet: geometry.Size{Width: 318, Height: 318},
	}
}

// Editor is the single owner of the tile sheet editing state. It is not
// safe for concurrent use; all mutation must happen on one goroutine.
type Editor struct {
	renderer *render.Renderer
	logger   *log.Logger

	tile      geometry.Size
	mapSize   geometry.Size
	sheetSize geometry.Size
	showGrid  bool
	selected  *geometry.Point
	image     *upload.Image

	sheet render.Surface
	tmap  render.Surface

	// sequence numbers of the last submitted and applied image loads
	requested uint64
	applied   uint64

	onRender func(error)
}

// New returns an Editor initialised from settings. Invalid dimensions fall
// back to the defaults.
func New(settings Settings, renderer *render.Renderer, logger *log.Logger) *Editor {
	d := DefaultSettings()
	if !settings.Tile.Valid() {
		settings.Tile = d.Tile
	}
	if !validMap(settings.Map.Width, settings.Map.Height) {
		settings.Map = d.Map
	}
	if !settings.Sheet.Valid() {
		settings.Sheet = d.Sheet
	}

	return &Editor{
		renderer:  renderer,
		logger:    logger,
		tile:      settings.Tile,
		mapSize:   settings.Map,
		sheetSize: settings.Sheet,
		showGrid:  settings.ShowGrid,
	}
}

// OnRender registers fn to be called after every render with its result.
// Only one function is kept; a later call replaces it.
func (e *Editor) OnRender(fn func(error)) {
	e.onRender = fn
}

func (e *Editor) frame() render.Frame {
	f := render.Frame{
		Sheet:    e.sheet,
		Map:      e.tmap,
		Tile:     e.tile,
		MapSize:  e.mapSize,
		ShowGrid: e.showGrid,
	}
	if e.image != nil {
		f.Image = e.image.Image
	}
	if e.selected != nil {
		p := *e.selected
		f.Selected = &p
	}
	return f
}

// changed is called after every accepted mutation.
func (e *Editor) changed() {
	_ = e.Render()
}

// Render redraws both surfaces from the current state. A failed render has
// already been logged and is retried on the next change.
func (e *Editor) Render() error {
	err := e.renderer.Render(e.frame())
	if e.onRender != nil {
		e.onRender(err)
	}
	return err
}

// TileSize returns the current tile size.
func (e *Editor) TileSize() geometry.Size {
	return e.tile
}

// MapSize returns the configured tile-map dimensions in pixels.
func (e *Editor) MapSize() geometry.Size {
	return e.mapSize
}

// ShowGrid reports whether the grid is drawn over the tile map.
func (e *Editor) ShowGrid() bool {
	return e.showGrid
}

// Selected returns the pixel origin of the selected tile, if any.
func (e *Editor) Selected() (geometry.Point, bool) {
	if e.selected == nil {
		return geometry.Point{}, false
	}
	return *e.selected, true
}

// Image returns the loaded tile sheet, if any.
func (e *Editor) Image() (upload.Image, bool) {
	if e.image == nil {
		return upload.Image{}, false
	}
	return *e.image, true
}

// SheetSurface returns the attached tile-sheet surface, or nil.
func (e *Editor) SheetSurface() render.Surface {
	return e.sheet
}

// MapSurface returns the attached tile-map surface, or nil.
func (e *Editor) MapSurface() render.Surface {
	return e.tmap
}

// SetTileWidth changes the tile width and clears the selection. Values that
// are not positive or exceed MaxDimension are ignored and false is returned.
func (e *Editor) SetTileWidth(w int) bool {
	if w <= 0 || w > MaxDimension {
		return false
	}
	e.tile.Width = w
	e.selected = nil
	e.changed()
	return true
}

// SetTileHeight changes the tile height and clears the selection. Values
// that are not positive or exceed MaxDimension are ignored.
func (e *Editor) SetTileHeight(h int) bool {
	if h <= 0 || h > MaxDimension {
		return false
	}
	e.tile.Height = h
	e.selected = nil
	e.changed()
	return true
}

func validMap(w, h int) bool {
	return w > 0 && h > 0 && w <= MaxDimension && h <= MaxDimension && w*h <= MaxMapArea
}

// SetMapWidth changes the tile-map width. Non-positive values and maps
// larger than MaxMapArea are ignored.
func (e *Editor) SetMapWidth(w int) bool {
	if !validMap(w, e.mapSize.Height) {
		return false
	}
	e.mapSize.Width = w
	e.resizeMap()
	e.changed()
	return true
}

// SetMapHeight changes the tile-map height. Non-positive values and maps
// larger than MaxMapArea are ignored.
func (e *Editor) SetMapHeight(h int) bool {
	if !validMap(e.mapSize.Width, h) {
		return false
	}
	e.mapSize.Height = h
	e.resizeMap()
	e.changed()
	return true
}

func (e *Editor) resizeMap() {
	if e.tmap != nil {
		e.tmap.Resize(e.mapSize.Width, e.mapSize.Height)
	}
}

// SetShowGrid toggles the grid drawn over the tile map.
func (e *Editor) SetShowGrid(show bool) {
	e.showGrid = show
	e.changed()
}

// Click selects the tile under the pointer offset (px, py) on the tile-sheet
// surface. The offset is not checked against the loaded image.
func (e *Editor) Click(px, py int) geometry.Point {
	p := geometry.TileOrigin(px, py, e.tile)
	e.selected = &p
	e.changed()
	return p
}

// SetSheetSurface attaches the tile-sheet surface. It is sized to the loaded
// image, or the initial sheet size if there is none.
func (e *Editor) SetSheetSurface(s render.Surface) {
	e.sheet = s
	if s != nil {
		if e.image != nil {
			s.Resize(e.image.Width, e.image.Height)
		} else {
			s.Resize(e.sheetSize.Width, e.sheetSize.Height)
		}
	}
	e.changed()
}

// SetMapSurface attaches the tile-map surface, sized to the map dimensions.
func (e *Editor) SetMapSurface(s render.Surface) {
	e.tmap = s
	e.resizeMap()
	e.changed()
}

// SetImage makes m the current tile sheet, resizing the tile-sheet surface to
// its natural size. The map dimensions are left alone.
func (e *Editor) SetImage(m upload.Image) error {
	if e.sheet == nil {
		e.logger.Println(ErrNoSheetSurface)
		return ErrNoSheetSurface
	}
	e.sheet.Resize(m.Width, m.Height)
	e.image = &m
	e.changed()
	return nil
}
