// Package imageprocessor produces thumbnails for uploaded media images.
package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ThumbnailSize is the longest edge of generated thumbnails.
const ThumbnailSize = 300

// Processor handles image processing operations
type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Thumbnail is an encoded preview plus the source image's dimensions.
type Thumbnail struct {
	Data         []byte
	ContentType  string
	Ext          string
	SourceWidth  int
	SourceHeight int
}

// IsImage reports whether the mime type is one the processor can decode.
func IsImage(mime string) bool {
	switch mime {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// MakeThumbnail decodes data and scales it so the longest edge is at most maxEdge.
// PNG and GIF sources produce PNG thumbnails (transparency is kept); everything else becomes JPEG.
func (p *Processor) MakeThumbnail(data []byte, maxEdge int) (*Thumbnail, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	resized := p.resize(img, maxEdge, maxEdge)

	thumb := &Thumbnail{SourceWidth: bounds.Dx(), SourceHeight: bounds.Dy()}
	var buf bytes.Buffer
	switch format {
	case "png", "gif":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		thumb.ContentType, thumb.Ext = "image/png", ".png"
	default:
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		thumb.ContentType, thumb.Ext = "image/jpeg", ".jpg"
	}
	thumb.Data = buf.Bytes()
	return thumb, nil
}

// resize keeps the aspect ratio and never upscales.
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Dimensions returns the width and height without decoding the full image.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
