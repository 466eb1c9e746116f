package optimizer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Codec abstracts decoding, scaling and encoding so the compression schedule
// can be exercised with a scripted fake in tests.
type Codec interface {
	Decode(data []byte) (img image.Image, width, height int, err error)
	Resize(img image.Image, width, height int) image.Image
	Encode(img image.Image, quality float64) ([]byte, error)
}

// JPEGCodec is the production codec. It decodes JPEG and PNG input and always
// encodes JPEG output.
type JPEGCodec struct{}

func (JPEGCodec) Decode(data []byte) (image.Image, int, int, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := img.Bounds()
	return img, bounds.Dx(), bounds.Dy(), nil
}

func (JPEGCodec) Resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func (JPEGCodec) Encode(img image.Image, quality float64) ([]byte, error) {
	q := int(quality * 100)
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
