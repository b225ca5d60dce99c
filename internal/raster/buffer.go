package raster

import (
	"image"
	"image/color"
	"image/draw"

	"wireframe-renderer/internal/scene"
)

// Viewport is the pixel target of the rasterizer. (0,0) is the top-left
// pixel and y grows downward. SetPixel must ignore coordinates outside
// [0,Width)×[0,Height).
type Viewport interface {
	Width() int
	Height() int
	Background() scene.Color
	SetPixel(x, y int, c scene.Color)
}

// FrameBuffer holds the rendering target as a flat NRGBA slice for cache locality.
type FrameBuffer struct {
	Width      int
	Height     int
	Color      []uint8 // RGBA interleaved, len = W*H*4
	Background scene.Color
}

// NewFrameBuffer allocates a buffer cleared to bg.
func NewFrameBuffer(w, h int, bg scene.Color) *FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	fb := &FrameBuffer{
		Width:      w,
		Height:     h,
		Color:      make([]uint8, w*h*4),
		Background: bg,
	}
	fb.Clear()
	return fb
}

// NewFrameBufferFromImage copies img into a new buffer. The background
// color is bg; the image pixels are kept.
func NewFrameBufferFromImage(img image.Image, bg scene.Color) *FrameBuffer {
	b := img.Bounds()
	fb := &FrameBuffer{
		Width:      b.Dx(),
		Height:     b.Dy(),
		Background: bg,
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	fb.Color = dst.Pix
	return fb
}

// Clear fills the whole buffer with the background color.
func (fb *FrameBuffer) Clear() {
	fb.fill(0, 0, fb.Width, fb.Height, fb.Background.NRGBA())
}

func (fb *FrameBuffer) fill(x0, y0, w, h int, c color.NRGBA) {
	for y := y0; y < y0+h; y++ {
		off := (y*fb.Width + x0) * 4
		for x := 0; x < w; x++ {
			i := off + x*4
			fb.Color[i] = c.R
			fb.Color[i+1] = c.G
			fb.Color[i+2] = c.B
			fb.Color[i+3] = c.A
		}
	}
}

func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// Pixel returns the pixel at (x, y); ok is false outside the buffer.
func (fb *FrameBuffer) Pixel(x, y int) (c color.NRGBA, ok bool) {
	if !fb.inBounds(x, y) {
		return c, false
	}
	i := (y*fb.Width + x) * 4
	return color.NRGBA{R: fb.Color[i], G: fb.Color[i+1], B: fb.Color[i+2], A: fb.Color[i+3]}, true
}

// Set writes one pixel; out-of-range writes are ignored and reported false.
func (fb *FrameBuffer) Set(x, y int, c color.NRGBA) bool {
	if !fb.inBounds(x, y) {
		return false
	}
	i := (y*fb.Width + x) * 4
	fb.Color[i] = c.R
	fb.Color[i+1] = c.G
	fb.Color[i+2] = c.B
	fb.Color[i+3] = c.A
	return true
}

// Image wraps a copy of the buffer as an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

// View returns a viewport covering the whole buffer.
func (fb *FrameBuffer) View() *View {
	return &View{fb: fb, W: fb.Width, H: fb.Height, Bg: fb.Background}
}

// NewView returns a viewport on the rectangle with upper-left corner
// (x, y) and size w×h, clipped to the buffer, with its own background.
func (fb *FrameBuffer) NewView(x, y, w, h int, bg scene.Color) *View {
	r := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	return &View{fb: fb, X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy(), Bg: bg}
}

// View is a rectangular region of a FrameBuffer. It implements Viewport.
type View struct {
	fb      *FrameBuffer
	X, Y    int // upper-left corner in the buffer
	W, H    int
	Bg      scene.Color
	Dropped int // out-of-range SetPixel calls since the last Clear
}

func (v *View) Width() int              { return v.W }
func (v *View) Height() int             { return v.H }
func (v *View) Background() scene.Color { return v.Bg }

// SetPixel writes c at view coordinates (x, y). Writes outside the view
// are counted in Dropped and otherwise ignored.
func (v *View) SetPixel(x, y int, c scene.Color) {
	if x < 0 || x >= v.W || y < 0 || y >= v.H {
		v.Dropped++
		return
	}
	v.fb.Set(v.X+x, v.Y+y, c.NRGBA())
}

// Pixel reads the pixel at view coordinates (x, y).
func (v *View) Pixel(x, y int) (color.NRGBA, bool) {
	if x < 0 || x >= v.W || y < 0 || y >= v.H {
		return color.NRGBA{}, false
	}
	return v.fb.Pixel(v.X+x, v.Y+y)
}

// Clear fills the view with its background and resets Dropped.
func (v *View) Clear() {
	v.fb.fill(v.X, v.Y, v.W, v.H, v.Bg.NRGBA())
	v.Dropped = 0
}
