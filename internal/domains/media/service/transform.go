package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	formatGIF   = "gif"
	formatPNG   = "png"
	jpegQuality = 90
)

// limitDimensions shrinks the image to fit inside maxWidth x maxHeight keeping the aspect ratio.
// Images already inside the box, and GIFs, are returned untouched.
func limitDimensions(data []byte, format string, maxWidth, maxHeight int) ([]byte, error) {
	if format == formatGIF || maxWidth <= 0 || maxHeight <= 0 {
		return data, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid image file: %w", err)
	}

	width, height := FitWithin(cfg.Width, cfg.Height, maxWidth, maxHeight)
	if width == cfg.Width && height == cfg.Height {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid image file: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var out bytes.Buffer

	if format == formatPNG {
		err = png.Encode(&out, dst)
	} else {
		err = jpeg.Encode(&out, dst, &jpeg.Options{Quality: jpegQuality})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return out.Bytes(), nil
}

// FitWithin returns the largest size inside the box with the same aspect ratio, never upscaling.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	scale := min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))

	return max(1, int(float64(width)*scale+0.5)), max(1, int(float64(height)*scale+0.5))
}
