/*
Package upload turns a byte source into a decoded tile sheet.

PNG, GIF and JPEG are supported through the standard library, BMP, TIFF and
WebP through golang.org/x/image.
*/
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

var errEmpty = errors.New("upload: image has no pixels")

// Image is a decoded tile sheet together with its natural size.
type Image struct {
	image.Image
	Name   string
	Format string
	Width  int
	Height int
}

// Source is something that can be opened and decoded, like a file picked by
// the user.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// File returns a Source reading the named file.
func File(file string) Source {
	return Source{
		Name: filepath.Base(file),
		Open: func() (io.ReadCloser, error) {
			return os.Open(file)
		},
	}
}

// Bytes returns a Source reading from b.
func Bytes(name string, b []byte) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		},
	}
}

// Decode reads an image from r. No partial image is ever returned.
func Decode(r io.Reader) (Image, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return Image{}, err
	}

	b := m.Bounds()
	if b.Empty() {
		return Image{}, errEmpty
	}

	return Image{
		Image:  m,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// DecodeConfig returns the format and natural size of the image in r without
// decoding the pixels.
func DecodeConfig(r io.Reader) (string, int, int, error) {
	c, format, err := image.DecodeConfig(r)
	if err != nil {
		return "", 0, 0, err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return "", 0, 0, errEmpty
	}
	return format, c.Width, c.Height, nil
}

// Load opens and decodes s.
func (s Source) Load() (Image, error) {
	rc, err := s.Open()
	if err != nil {
		return Image{}, err
	}
	defer rc.Close()

	m, err := Decode(rc)
	if err != nil {
		return Image{}, fmt.Errorf("%s: %w", s.Name, err)
	}
	m.Name = s.Name

	return m, nil
}
