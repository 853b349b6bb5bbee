package imgsize

import (
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, filename string, width, height int) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	f, err := os.Create(filename)
	require.NoError(t, err)
	defer f.Close()
	switch filepath.Ext(filename) {
	case ".png":
		require.NoError(t, png.Encode(f, img))
	case ".jpg":
		require.NoError(t, jpeg.Encode(f, img, nil))
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	pngFile := filepath.Join(dir, "1.png")
	writeImage(t, pngFile, 64, 48)
	size, err := ReadFile(pngFile)
	require.NoError(t, err)
	require.Equal(t, Size{Width: 64, Height: 48}, size)

	jpgFile := filepath.Join(dir, "2.jpg")
	writeImage(t, jpgFile, 33, 17)
	size, err = ReadFile(jpgFile)
	require.NoError(t, err)
	require.Equal(t, Size{Width: 33, Height: 17}, size)
}

func TestReadFileFallback(t *testing.T) {
	// Not a format that image.DecodeConfig knows
	filename := filepath.Join(t.TempDir(), "3.jpg")
	require.NoError(t, os.WriteFile(filename, []byte("not an image"), 0644))

	_, err := ReadFile(filename)
	require.ErrorIs(t, err, image.ErrFormat)
	require.Contains(t, err.Error(), "full decode")

	orig := fullDecode
	t.Cleanup(func() { fullDecode = orig })

	calls := 0
	fullDecode = func(f string) (Size, error) {
		calls++
		require.Equal(t, filename, f)
		return Size{Width: 7, Height: 5}, nil
	}
	size, err := ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, Size{Width: 7, Height: 5}, size)
	require.Equal(t, 1, calls)

	decodeErr := errors.New("corrupt")
	fullDecode = func(string) (Size, error) { return Size{}, decodeErr }
	_, err = ReadFile(filename)
	require.ErrorIs(t, err, decodeErr)
	require.ErrorIs(t, err, image.ErrFormat)

	// A readable header never reaches the full decode
	pngFile := filepath.Join(t.TempDir(), "4.png")
	writeImage(t, pngFile, 3, 2)
	calls = 0
	fullDecode = func(string) (Size, error) {
		calls++
		return Size{}, decodeErr
	}
	size, err = ReadFile(pngFile)
	require.NoError(t, err)
	require.Equal(t, Size{Width: 3, Height: 2}, size)
	require.Equal(t, 0, calls)
}
