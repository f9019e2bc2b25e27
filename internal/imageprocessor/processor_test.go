package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMakeThumbnail_ScalesLongestEdge(t *testing.T) {
	p := NewProcessor(0)
	thumb, err := p.MakeThumbnail(pngBytes(t, 1200, 600), ThumbnailSize)
	require.NoError(t, err)

	assert.Equal(t, "image/png", thumb.ContentType)
	assert.Equal(t, 1200, thumb.SourceWidth)
	assert.Equal(t, 600, thumb.SourceHeight)

	w, h, err := Dimensions(thumb.Data)
	require.NoError(t, err)
	assert.Equal(t, 300, w)
	assert.Equal(t, 150, h)
}

func TestMakeThumbnail_NoUpscale(t *testing.T) {
	thumb, err := NewProcessor(90).MakeThumbnail(pngBytes(t, 40, 20), ThumbnailSize)
	require.NoError(t, err)
	w, h, err := Dimensions(thumb.Data)
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)
}

func TestMakeThumbnail_Garbage(t *testing.T) {
	_, err := NewProcessor(80).MakeThumbnail([]byte("nope"), ThumbnailSize)
	assert.Error(t, err)
	assert.True(t, IsImage("image/webp"))
	assert.False(t, IsImage("application/pdf"))
}
