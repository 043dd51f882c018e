// Package qr renders the login QR code with the Merute logo in its centre.
package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"sync"

	"github.com/merute/welcome/internal/logging"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 200
	// LogoSize is the side of the square cleared behind the logo. High error
	// correction tolerates losing this much of a 200px code.
	LogoSize = 40
)

// Generator renders one payload once and serves the cached PNG afterwards.
type Generator struct {
	payload  string
	size     int
	logoPath string

	once sync.Once
	png  []byte
	err  error
}

// Option configures a Generator.
type Option func(*Generator)

// WithSize sets the image side in pixels.
func WithSize(px int) Option { return func(g *Generator) { g.size = px } }

// WithLogo overlays the PNG at path in the centre of the code.
func WithLogo(path string) Option { return func(g *Generator) { g.logoPath = path } }

func New(payload string, opts ...Option) *Generator {
	g := &Generator{payload: payload, size: DefaultSize}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Payload is the encoded URL.
func (g *Generator) Payload() string { return g.payload }

// PNG returns the encoded image.
func (g *Generator) PNG() ([]byte, error) {
	g.once.Do(func() {
		g.png, g.err = g.render()
		if g.err != nil {
			logging.ErrorLog("QR render failed: %v", g.err)
			return
		}
		logging.DebugLog("QR rendered (%d bytes)", len(g.png))
	})
	return g.png, g.err
}

func (g *Generator) render() ([]byte, error) {
	code, err := qrcode.New(g.payload, qrcode.High)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.BackgroundColor = color.White
	code.ForegroundColor = color.Black

	src := code.Image(g.size)
	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)

	if g.logoPath != "" {
		logo, err := loadLogo(g.logoPath)
		if err != nil {
			// The bare code still scans; keep serving it.
			logging.WarnLog("QR logo unavailable, rendering without it: %v", err)
		} else {
			excavate(canvas, logo, LogoSize)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func loadLogo(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}

// excavate clears a side x side square in the centre of dst and paints logo
// into it, scaled with nearest-neighbour sampling.
func excavate(dst *image.RGBA, logo image.Image, side int) {
	b := dst.Bounds()
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	area := image.Rect(x0, y0, x0+side, y0+side)
	draw.Draw(dst, area, image.NewUniform(color.White), image.Point{}, draw.Src)

	lb := logo.Bounds()
	if lb.Empty() {
		return
	}
	for y := 0; y < side; y++ {
		sy := lb.Min.Y + y*lb.Dy()/side
		for x := 0; x < side; x++ {
			sx := lb.Min.X + x*lb.Dx()/side
			c := logo.At(sx, sy)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			dst.Set(x0+x, y0+y, c)
		}
	}
}
