// Package images normalizes embedded figures before text recognition.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MinShortSide is the smallest short edge, in pixels, handed to OCR.
// Smaller figures are upscaled; Tesseract misses glyphs under ~20px tall.
const MinShortSide = 600

// MaxScale caps upscaling so tiny icons do not become huge bitmaps.
const MaxScale = 4

// Prepared is an image ready for recognition.
type Prepared struct {
	PNG    []byte
	Format string // format the source decoded as
	Width  int
	Height int
}

// PrepareForOCR decodes data in any supported format, upscales small images
// and re-encodes the result as PNG.
func PrepareForOCR(data []byte) (*Prepared, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img := upscale(src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &Prepared{
		PNG:    buf.Bytes(),
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// ScaleFactor returns the integer factor applied to an image of the given size.
func ScaleFactor(width, height int) int {
	short := min(width, height)
	if short <= 0 || short >= MinShortSide {
		return 1
	}
	factor := (MinShortSide + short - 1) / short
	return min(factor, MaxScale)
}

func upscale(src image.Image) image.Image {
	b := src.Bounds()
	factor := ScaleFactor(b.Dx(), b.Dy())
	if factor == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
