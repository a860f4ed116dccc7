package imagesource

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	jpegQuality = 90

	// DefaultMaxPixels limita a área lida do cabeçalho antes de decodificar a imagem inteira
	DefaultMaxPixels = 50_000_000
)

// Normalizer deixa a imagem num formato aceito pela plataforma:
// WebP vira PNG e imagens acima de MaxDimension são reduzidas mantendo a proporção.
// Qualquer outra imagem passa sem alteração.
type Normalizer struct {
	MaxDimension int
	MaxPixels    int
}

func NewNormalizer(maxDimension int) *Normalizer {
	return &Normalizer{MaxDimension: maxDimension, MaxPixels: DefaultMaxPixels}
}

func (n *Normalizer) Normalize(data []byte) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// formato desconhecido: a plataforma decide
		logrus.WithError(err).Debug("imagesource: could not detect image format, uploading as is")
		return data, nil
	}

	if pixels := cfg.Width * cfg.Height; n.MaxPixels > 0 && pixels > n.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels (max %d)", ErrImageTooLarge, cfg.Width, cfg.Height, n.MaxPixels)
	}

	oversized := n.MaxDimension > 0 && (cfg.Width > n.MaxDimension || cfg.Height > n.MaxDimension)
	if format != "webp" && !oversized {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s image: %w", format, err)
	}

	if oversized {
		img = n.downscale(img)
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("encode normalized image: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"format":      format,
		"width":       cfg.Width,
		"height":      cfg.Height,
		"downscaled":  oversized,
		"input_size":  len(data),
		"output_size": buf.Len(),
	}).Debug("imagesource: image normalized")

	return buf.Bytes(), nil
}

func (n *Normalizer) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := n.MaxDimension, n.MaxDimension
	if width >= height {
		newHeight = max(1, int(float64(height)*float64(n.MaxDimension)/float64(width)))
	} else {
		newWidth = max(1, int(float64(width)*float64(n.MaxDimension)/float64(height)))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
