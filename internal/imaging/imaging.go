// Package imaging turns uploaded photos into square JPEG swatches.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// SwatchSize is the edge length of a stored swatch, in pixels.
const SwatchSize = 512

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// MIME is the type of every processed swatch.
const MIME = "image/jpeg"

// allowedMIME lists the accepted input types, as sniffed from the bytes.
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Swatch reads a JPEG or PNG photo, crops it to a centred square and scales
// it down to at most SwatchSize. The client's Content-Type is not trusted.
func Swatch(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	src := centreSquare(img.Bounds())
	size := min(src.Dx(), SwatchSize)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// centreSquare returns the largest square inside b, centred.
func centreSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w > h {
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	}
	off := (h - w) / 2
	return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
}
