// Package thumbnail derives reduced-size renderings for image media.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"github.com/memberhub/media-api/internal/domain/media"
)

// Generator resizes image bytes with Lanczos resampling and encodes the
// result as JPEG.
type Generator struct {
	quality int
}

func NewGenerator() *Generator {
	return &Generator{quality: 85}
}

// Generate returns thumbnail bytes no larger than maxDim on the longest side.
// Images already within bounds are re-encoded without upscaling.
func (g *Generator) Generate(data []byte, maxDim int) ([]byte, error) {
	if maxDim <= 0 {
		return nil, fmt.Errorf("invalid thumbnail dimension %d", maxDim)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(g.quality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// Probe reports the pixel dimensions of image bytes without a full decode.
func (g *Generator) Probe(data []byte) (*media.Dimensions, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}
	return &media.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
