// Package imgsize reads the pixel dimensions of an image file without decoding the pixels,
// whenever the format allows it.
package imgsize

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/bmharper/cimg/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Size is the width and height of an image, in pixels
type Size struct {
	Width  int
	Height int
}

// ReadFile returns the dimensions of an image file.
// We first try to read only the header. If Go doesn't recognize the header, we fall back to
// a full decode through cimg (libjpeg-turbo), which copes with some JPEG variants that image/jpeg rejects.
func ReadFile(filename string) (Size, error) {
	size, headerErr := readHeader(filename)
	if headerErr == nil {
		return size, nil
	}
	size, err := fullDecode(filename)
	if err != nil {
		return Size{}, fmt.Errorf("Unable to read image size of %v: %w (full decode: %w)", filename, headerErr, err)
	}
	return size, nil
}

// fullDecode is used when the header can't be read. Tests replace it.
var fullDecode = func(filename string) (Size, error) {
	img, err := cimg.ReadFile(filename)
	if err != nil {
		return Size{}, err
	}
	return Size{Width: img.Width, Height: img.Height}, nil
}

func readHeader(filename string) (Size, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Size{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return Size{}, err
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}
