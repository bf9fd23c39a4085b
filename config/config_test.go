package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/tilesheet"
	"github.com/bodgit/tilesheet/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, s string) string {
	file := filepath.Join(t.TempDir(), "tilesheet.toml")
	require.Nil(t, os.WriteFile(file, []byte(s), 0o644))
	return file
}

func TestDefaultMatchesEditor(t *testing.T) {
	c, err := Load("")
	require.Nil(t, err)
	assert.Equal(t, tilesheet.DefaultSettings(), c.Settings())

	s, err := c.RenderStyle()
	require.Nil(t, err)
	assert.Equal(t, color.NRGBA{0x34, 0xbd, 0xe3, 0xaa}, s.Highlight)
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, s.Background)
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, s.Grid)
}

func TestLoad(t *testing.T) {
	file := writeConfig(t, `
[tile]
width = 16
height = 8

[map]
width = 640
show_grid = true

[style]
grid = "#ff0000"
`)

	c, err := Load(file)
	require.Nil(t, err)

	s := c.Settings()
	assert.Equal(t, geometry.Size{Width: 16, Height: 8}, s.Tile)
	assert.Equal(t, geometry.Size{Width: 640, Height: 320}, s.Map)
	assert.True(t, s.ShowGrid)

	style, err := c.RenderStyle()
	require.Nil(t, err)
	assert.Equal(t, color.NRGBA{0xff, 0, 0, 0xff}, style.Grid)
}

func TestLoadInvalid(t *testing.T) {
	tables := []string{
		"[tile]\nwidth = 0\n",
		"[map]\nheight = -10\n",
		"[map]\nwidth = 99999999\n",
		"[style]\nhighlight = \"blue\"\n",
		"[tile]\ndepth = 3\n",
		"this is not toml",
	}

	for _, table := range tables {
		_, err := Load(writeConfig(t, table))
		assert.NotNil(t, err, table)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.NotNil(t, err)
}

func TestParseColor(t *testing.T) {
	tables := []struct {
		input string
		want  color.NRGBA
		ok    bool
	}{
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"#000", color.NRGBA{0, 0, 0, 0xff}, true},
		{"#34bde3aa", color.NRGBA{0x34, 0xbd, 0xe3, 0xaa}, true},
		{"34BDE3", color.NRGBA{0x34, 0xbd, 0xe3, 0xff}, true},
		{"#f008", color.NRGBA{0xff, 0, 0, 0x88}, true},
		{"", color.NRGBA{}, false},
		{"#ggg", color.NRGBA{}, false},
		{"#12345", color.NRGBA{}, false},
		{"#fffg", color.NRGBA{}, false},
		{"#34bde3zz", color.NRGBA{}, false},
		{"#3a5", color.NRGBA{0x33, 0xaa, 0x55, 0xff}, true},
	}

	for _, table := range tables {
		c, err := ParseColor(table.input)
		if table.ok {
			require.Nil(t, err, table.input)
			assert.Equal(t, table.want, c, table.input)
		} else {
			assert.NotNil(t, err, table.input)
		}
	}
}
