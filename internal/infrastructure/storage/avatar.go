package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register gif
	"image/jpeg"
	_ "image/png" // register png

	"golang.org/x/image/draw"

	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

const (
	DefaultAvatarMaxDimension = 512
	DefaultAvatarQuality      = 85
	// maxSourcePixels bounds decoding so a tiny file cannot expand into a huge bitmap.
	maxSourcePixels = 40_000_000
)

// NormalizeAvatar decodes a gif, png or jpeg image, scales it down so that
// neither side exceeds maxDim (aspect ratio kept, never scaled up), flattens
// transparency onto white and re-encodes it as JPEG. Input that is not an
// image comes back as a *errors.ValidationError.
func NormalizeAvatar(data []byte, maxDim, quality int) ([]byte, error) {
	if maxDim <= 0 {
		maxDim = DefaultAvatarMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultAvatarQuality
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domerrors.NewValidationError("image", "unsupported or corrupt image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxSourcePixels {
		return nil, domerrors.NewValidationError("image", "image dimensions out of range")
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domerrors.NewValidationError("image", "unsupported or corrupt image")
	}

	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), maxDim)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

// fit returns w x h scaled down to fit a maxDim square.
func fit(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		nh := h * maxDim / w
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := w * maxDim / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}
