package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireframe-renderer/internal/scene"
)

func TestFrameBufferClearedToBackground(t *testing.T) {
	fb := NewFrameBuffer(3, 2, scene.Red)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c, ok := fb.Pixel(x, y)
			require.True(t, ok)
			assert.Equal(t, color.NRGBA{R: 255, A: 255}, c)
		}
	}
	_, ok := fb.Pixel(3, 0)
	assert.False(t, ok)
}

func TestFrameBufferSetOutOfRange(t *testing.T) {
	fb := NewFrameBuffer(2, 2, scene.Black)
	assert.True(t, fb.Set(1, 1, color.NRGBA{G: 10, A: 255}))
	assert.False(t, fb.Set(-1, 0, color.NRGBA{}))
	assert.False(t, fb.Set(0, 2, color.NRGBA{}))
}

func TestViewOffsetsAndDrops(t *testing.T) {
	fb := NewFrameBuffer(8, 8, scene.Black)
	v := fb.NewView(2, 3, 4, 4, scene.White)
	v.Clear()

	v.SetPixel(0, 0, scene.Green)
	v.SetPixel(4, 0, scene.Green)
	v.SetPixel(0, -1, scene.Green)

	c, ok := fb.Pixel(2, 3)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, c)
	assert.Equal(t, 2, v.Dropped)

	c, _ = fb.Pixel(5, 6)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, c, "view clear fills its own rectangle")
	c, _ = fb.Pixel(1, 3)
	assert.Equal(t, color.NRGBA{A: 255}, c, "pixels outside the view stay untouched")

	v.Clear()
	assert.Zero(t, v.Dropped)
}

func TestNewViewClippedToBuffer(t *testing.T) {
	fb := NewFrameBuffer(10, 10, scene.Black)
	v := fb.NewView(6, -2, 8, 5, scene.Black)
	assert.Equal(t, 6, v.X)
	assert.Equal(t, 0, v.Y)
	assert.Equal(t, 4, v.Width())
	assert.Equal(t, 3, v.Height())
}

func TestFrameBufferImageIsCopy(t *testing.T) {
	fb := NewFrameBuffer(2, 2, scene.Black)
	img := fb.Image()
	fb.Set(0, 0, color.NRGBA{R: 1, A: 255})
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(0, 0))
}

func TestFrameBufferFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(6, 5, color.NRGBA{B: 200, A: 255})

	fb := NewFrameBufferFromImage(src, scene.Gray)
	assert.Equal(t, 2, fb.Width)
	assert.Equal(t, 1, fb.Height)
	c, ok := fb.Pixel(1, 0)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{B: 200, A: 255}, c)
}

func TestDrawLineIntoView(t *testing.T) {
	fb := NewFrameBuffer(20, 10, scene.Black)
	v := fb.NewView(10, 0, 10, 10, scene.Black)
	DrawLine(v, pt(-1, -1), pt(1, 1), scene.White, scene.White, LineOptions{})

	assert.Zero(t, v.Dropped)
	for i := 0; i < 10; i++ {
		c, _ := fb.Pixel(10+i, 9-i)
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, c)
		c, _ = fb.Pixel(i, 9-i)
		assert.Equal(t, color.NRGBA{A: 255}, c)
	}
}
