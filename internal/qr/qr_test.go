package qr_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/merute/welcome/internal/qr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogo(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestGeneratorPNG(t *testing.T) {
	g := qr.New("https://merute.dev")
	data, err := g.PNG()
	require.NoError(t, err)

	img := decode(t, data)
	assert.Equal(t, qr.DefaultSize, img.Bounds().Dx())
	assert.Equal(t, qr.DefaultSize, img.Bounds().Dy())
	assert.Equal(t, "https://merute.dev", g.Payload())

	again, err := g.PNG()
	require.NoError(t, err)
	assert.Equal(t, data, again, "render is cached")
}

func TestGeneratorLogo(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	data, err := qr.New("https://merute.dev", qr.WithLogo(writeLogo(t, red))).PNG()
	require.NoError(t, err)

	img := decode(t, data)
	mid := qr.DefaultSize / 2
	r, g, b, _ := img.At(mid, mid).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})

	// Corners stay finder-pattern black or quiet-zone white.
	r, g, b, _ = img.At(0, 0).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestGeneratorMissingLogo(t *testing.T) {
	data, err := qr.New("https://merute.dev", qr.WithLogo(filepath.Join(t.TempDir(), "none.png"))).PNG()
	require.NoError(t, err)
	assert.Equal(t, qr.DefaultSize, decode(t, data).Bounds().Dx())
}

func TestGeneratorSize(t *testing.T) {
	data, err := qr.New("https://merute.dev", qr.WithSize(320)).PNG()
	require.NoError(t, err)
	assert.Equal(t, 320, decode(t, data).Bounds().Dx())
}
