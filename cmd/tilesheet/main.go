package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/tilesheet"
	"github.com/bodgit/tilesheet/config"
	"github.com/bodgit/tilesheet/export"
	"github.com/bodgit/tilesheet/render"
	"github.com/bodgit/tilesheet/tui"
	"github.com/bodgit/tilesheet/upload"
	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v2"
)

const defaultDB = "tilesheet.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newEditor(c *cli.Context, logger *log.Logger) (*tilesheet.Editor, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	style, err := cfg.RenderStyle()
	if err != nil {
		return nil, err
	}

	return tilesheet.New(cfg.Settings(), render.New(style, logger), logger), nil
}

// source picks the tile sheet from either the command line or the library.
func source(c *cli.Context) (*upload.Source, error) {
	if ref := c.String("sheet"); ref != "" {
		db, err := tilesheet.NewSheetDB(c.String("db"))
		if err != nil {
			return nil, err
		}
		defer db.Close()

		_, src, err := db.Find(ref)
		if err != nil {
			return nil, err
		}
		return &src, nil
	}

	if c.NArg() > 0 {
		src := upload.File(c.Args().First())
		return &src, nil
	}

	return nil, nil
}

func parseClick(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid click %q, expected X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid click %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid click %q: %w", s, err)
	}
	return x, y, nil
}

// applyFields feeds the dimension flags through the same validation as
// typing them into the editor.
func applyFields(c *cli.Context, e *tilesheet.Editor, logger *log.Logger) {
	fields := []struct {
		name  string
		input func(string) bool
	}{
		{"tile-width", e.InputTileWidth},
		{"tile-height", e.InputTileHeight},
		{"map-width", e.InputMapWidth},
		{"map-height", e.InputMapHeight},
	}

	for _, f := range fields {
		if !c.IsSet(f.name) {
			continue
		}
		if !f.input(c.String(f.name)) {
			logger.Printf("Ignoring invalid %s \"%s\"\n", f.name, c.String(f.name))
		}
	}

	if c.IsSet("grid") {
		e.SetShowGrid(c.Bool("grid"))
	}
}

func writeImage(file string, m image.Image, colors int) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := export.Encode(f, m, colors); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func main() {
	app := cli.NewApp()

	app.Name = "tilesheet"
	app.Usage = "Tile sheet slicing and tile map preview utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	dimensionFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "tile-width",
			Usage: "tile width in pixels",
		},
		&cli.StringFlag{
			Name:  "tile-height",
			Usage: "tile height in pixels",
		},
		&cli.StringFlag{
			Name:  "map-width",
			Usage: "tile map width in pixels",
		},
		&cli.StringFlag{
			Name:  "map-height",
			Usage: "tile map height in pixels",
		},
		&cli.BoolFlag{
			Name:  "grid",
			Usage: "draw the grid over the tile map",
		},
		&cli.StringFlag{
			Name:  "sheet",
			Usage: "load the tile sheet from the library by name or SHA-1",
		},
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"TILESHEET_CONFIG"},
			Usage:   "path to TOML configuration file",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TILESHEET_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to tile sheet library",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "render",
			Usage:     "Render the tile sheet and tile map previews to PNG",
			ArgsUsage: "[FILE]",
			Flags: append([]cli.Flag{
				&cli.StringSliceFlag{
					Name:  "click",
					Usage: "click the tile sheet at `X,Y`, may be repeated",
				},
				&cli.StringFlag{
					Name:  "sheet-out",
					Value: "sheet.png",
					Usage: "write the tile sheet preview to `FILE`",
				},
				&cli.StringFlag{
					Name:  "map-out",
					Value: "map.png",
					Usage: "write the tile map preview to `FILE`",
				},
				&cli.StringFlag{
					Name:  "tile-out",
					Usage: "write the selected tile to `FILE`",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce output to at most `N` colors",
				},
			}, dimensionFlags...),
			Action: func(c *cli.Context) error {
				logger := newLogger(c)

				e, err := newEditor(c, logger)
				if err != nil {
					return cli.Exit(err, 1)
				}

				sheet, tileMap := render.NewCanvas(0, 0), render.NewCanvas(0, 0)
				e.SetSheetSurface(sheet)
				e.SetMapSurface(tileMap)

				src, err := source(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if src != nil {
					if err := e.Load(c.Context, *src); err != nil {
						return cli.Exit(err, 1)
					}
				}

				applyFields(c, e, logger)

				for _, click := range c.StringSlice("click") {
					x, y, err := parseClick(click)
					if err != nil {
						return cli.Exit(err, 1)
					}
					e.Click(x, y)
				}

				if err := e.Render(); err != nil {
					return cli.Exit(err, 1)
				}

				colors := c.Int("colors")
				outputs := []struct {
					file string
					m    image.Image
				}{
					{c.String("sheet-out"), sheet.Image()},
					{c.String("map-out"), tileMap.Image()},
				}

				if file := c.String("tile-out"); file != "" {
					p, ok := e.Selected()
					m, loaded := e.Image()
					switch {
					case !ok:
						return cli.Exit("no tile selected, use --click", 1)
					case !loaded:
						return cli.Exit("no tile sheet loaded", 1)
					}
					outputs = append(outputs, struct {
						file string
						m    image.Image
					}{file, export.Tile(m, p, e.TileSize())})
				}

				for _, o := range outputs {
					if o.file == "" {
						continue
					}
					if err := writeImage(o.file, o.m, colors); err != nil {
						return cli.Exit(err, 1)
					}
					logger.Printf("Wrote \"%s\"\n", o.file)
				}

				return nil
			},
		},
		{
			Name:      "edit",
			Usage:     "Edit interactively in the terminal",
			ArgsUsage: "[FILE]",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 4,
					Usage: "pixels per terminal cell",
				},
			}, dimensionFlags...),
			Action: func(c *cli.Context) error {
				logger := newLogger(c)

				e, err := newEditor(c, logger)
				if err != nil {
					return cli.Exit(err, 1)
				}

				src, err := source(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				screen, err := tcell.NewScreen()
				if err != nil {
					return cli.Exit(err, 1)
				}
				if err := screen.Init(); err != nil {
					return cli.Exit(err, 1)
				}
				defer screen.Fini()

				v := tui.New(screen, e, c.Int("scale"), logger)

				// A bad file still leaves an empty sheet to work with
				if src != nil {
					if err := e.Load(c.Context, *src); err != nil {
						logger.Println(err)
					}
				}

				applyFields(c, e, logger)

				if err := v.Run(c.Context); err != nil && !errors.Is(err, context.Canceled) {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import tile sheets into the library",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				db, err := tilesheet.NewSheetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				for _, file := range c.Args().Slice() {
					sha, err := db.Import(file)
					if err != nil {
						return cli.Exit(err, 1)
					}
					logger.Printf("Imported \"%s\" as %s\n", file, sha)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List tile sheets in the library",
			Action: func(c *cli.Context) error {
				db, err := tilesheet.NewSheetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				sheets, err := db.List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, s := range sheets {
					fmt.Fprintf(c.App.Writer, "%.12s  %-5s %5dx%-5d %s\n", s.SHA1, s.Format, s.Width, s.Height, s.Name)
				}

				return nil
			},
		},
		{
			Name:      "remove",
			Usage:     "Remove a tile sheet from the library",
			ArgsUsage: "NAME|SHA1",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := tilesheet.NewSheetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.Delete(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
