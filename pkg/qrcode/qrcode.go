// Package qrcode renders QR codes as SVG markup or PNG images.
package qrcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultSize is the rendered width and height in pixels.
const DefaultSize = 200

// QuietZone is the blank border around the symbol, in modules.
const QuietZone = 4

// ErrEmptyValue is returned when there is nothing to encode.
var ErrEmptyValue = errors.New("qrcode: empty value")

func encode(value string) (barcode.Barcode, error) {
	if value == "" {
		return nil, ErrEmptyValue
	}
	bc, err := qr.Encode(value, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode %q: %w", value, err)
	}
	return bc, nil
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return (r+g+b)/3 < 0x8000
}

// SVG returns an SVG document size×size pixels wide. Modules are drawn in a
// viewBox of whole module units so the output scales without blurring.
func SVG(value string, size int) (string, error) {
	if size <= 0 {
		size = DefaultSize
	}
	bc, err := encode(value)
	if err != nil {
		return "", err
	}

	bounds := bc.Bounds()
	dim := bounds.Dx() + 2*QuietZone

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, size, size, dim, dim)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="#FFFFFF"/>`, dim, dim)
	sb.WriteString(`<path fill="#000000" d="`)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if isDark(bc.At(x, y)) {
				fmt.Fprintf(&sb, "M%d,%dh1v1h-1z", x-bounds.Min.X+QuietZone, y-bounds.Min.Y+QuietZone)
			}
		}
	}
	sb.WriteString(`"/></svg>`)
	return sb.String(), nil
}

// PNG returns a size×size PNG image. Modules are scaled by the largest whole
// factor that fits and the symbol is centered.
func PNG(value string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	bc, err := encode(value)
	if err != nil {
		return nil, err
	}

	bounds := bc.Bounds()
	dim := bounds.Dx() + 2*QuietZone
	scale := size / dim
	if scale < 1 {
		return nil, fmt.Errorf("qrcode: size %d too small for %d modules", size, dim)
	}
	offset := (size-scale*dim)/2 + QuietZone*scale

	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !isDark(bc.At(x, y)) {
				continue
			}
			px := offset + (x-bounds.Min.X)*scale
			py := offset + (y-bounds.Min.Y)*scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetGray(px+dx, py+dy, color.Gray{Y: 0})
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("qrcode: png: %w", err)
	}
	return buf.Bytes(), nil
}
