package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	// Formats a phone or scanner may hand us
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned when image data cannot be decoded
var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

// PrepareImage decodes PNG, JPEG, GIF, WebP, TIFF or BMP data and re-encodes
// it as PNG, which Tesseract always reads. It also returns the image bounds.
func PrepareImage(data []byte) ([]byte, image.Rectangle, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if format == "png" {
		return data, img.Bounds(), nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), img.Bounds(), nil
}
