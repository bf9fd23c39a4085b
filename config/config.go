/*
Package config loads editor defaults from a TOML file.

Every value is optional; anything missing from the file keeps its built-in
default:

	[tile]
	width = 32
	height = 32

	[map]
	width = 320
	height = 320
	show_grid = false

	[sheet]
	width = 318
	height = 318

	[style]
	grid = "#000"
	highlight = "#34bde3aa"
	background = "#fff"
*/
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bodgit/tilesheet"
	"github.com/bodgit/tilesheet/geometry"
	"github.com/bodgit/tilesheet/render"
	"github.com/lucasb-eyer/go-colorful"
)

var errColor = errors.New("config: invalid color")

// Dimensions is a width and height in pixels.
type Dimensions struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Map holds the tile-map settings.
type Map struct {
	Dimensions
	ShowGrid bool `toml:"show_grid"`
}

// Style holds colors as CSS-style hex strings.
type Style struct {
	Grid       string `toml:"grid"`
	Highlight  string `toml:"highlight"`
	Background string `toml:"background"`
}

// Config is the contents of a configuration file.
type Config struct {
	Tile  Dimensions `toml:"tile"`
	Map   Map        `toml:"map"`
	Sheet Dimensions `toml:"sheet"`
	Style Style      `toml:"style"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tile: Dimensions{32, 32},
		Map: Map{
			Dimensions: Dimensions{320, 320},
		},
		Sheet: Dimensions{318, 318},
		Style: Style{
			Grid:       "#000",
			Highlight:  "#34bde3aa",
			Background: "#fff",
		},
	}
}

// Load reads file over the defaults. An empty file name returns the
// defaults.
func Load(file string) (*Config, error) {
	c := Default()
	if file == "" {
		return c, nil
	}

	md, err := toml.DecodeFile(file, c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func validDimensions(name string, d Dimensions) error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("config: %s dimensions must be positive, got %dx%d", name, d.Width, d.Height)
	}
	if d.Width > tilesheet.MaxDimension || d.Height > tilesheet.MaxDimension {
		return fmt.Errorf("config: %s dimensions must not exceed %d, got %dx%d", name, tilesheet.MaxDimension, d.Width, d.Height)
	}
	return nil
}

// Validate checks every value is usable.
func (c *Config) Validate() error {
	if err := validDimensions("tile", c.Tile); err != nil {
		return err
	}
	if err := validDimensions("map", c.Map.Dimensions); err != nil {
		return err
	}
	if err := validDimensions("sheet", c.Sheet); err != nil {
		return err
	}
	_, err := c.RenderStyle()
	return err
}

// Settings returns the initial editor state.
func (c *Config) Settings() tilesheet.Settings {
	return tilesheet.Settings{
		Tile:     geometry.Size{Width: c.Tile.Width, Height: c.Tile.Height},
		Map:      geometry.Size{Width: c.Map.Width, Height: c.Map.Height},
		Sheet:    geometry.Size{Width: c.Sheet.Width, Height: c.Sheet.Height},
		ShowGrid: c.Map.ShowGrid,
	}
}

// RenderStyle parses the configured colors.
func (c *Config) RenderStyle() (render.Style, error) {
	var (
		s   render.Style
		err error
	)
	if s.Grid, err = ParseColor(c.Style.Grid); err != nil {
		return render.Style{}, fmt.Errorf("grid: %w", err)
	}
	if s.Highlight, err = ParseColor(c.Style.Highlight); err != nil {
		return render.Style{}, fmt.Errorf("highlight: %w", err)
	}
	if s.Background, err = ParseColor(c.Style.Background); err != nil {
		return render.Style{}, fmt.Errorf("background: %w", err)
	}
	return s, nil
}

// ParseColor parses #rgb, #rgba, #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var rgb, alpha string
	switch len(h) {
	case 3, 6:
		rgb, alpha = h, "ff"
	case 4:
		rgb, alpha = h[:3], strings.Repeat(h[3:], 2)
	case 8:
		rgb, alpha = h[:6], h[6:]
	default:
		return color.NRGBA{}, errColor
	}

	c, err := colorful.Hex("#" + rgb)
	if err != nil {
		return color.NRGBA{}, errColor
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return color.NRGBA{}, errColor
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
}
