// Package imageio reads background images and writes rendered frames.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"wireframe-renderer/internal/scene"
)

// decoders picks the codec by extension. The tga package registers with an
// empty magic string, which makes image.Decode hand it every file, so the
// known formats are never sniffed.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".webp": nativewebp.Decode,
	".tga":  tga.Decode,
}

// Load decodes a PNG, JPEG, TGA or WebP file into an NRGBA image.
// Other extensions fall back to image.Decode.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	if decode, ok := decoders[strings.ToLower(filepath.Ext(path))]; ok {
		img, err = decode(bufio.NewReader(f))
	} else {
		img, _, err = image.Decode(bufio.NewReader(f))
	}
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA format with its origin at (0,0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Encode writes img in format: webp (lossless), png or tga.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "png":
		return png.Encode(w, img)
	case "tga":
		return tga.Encode(w, img)
	}
	return fmt.Errorf("imageio: unknown format %q", format)
}

// Save writes img to path, picking the format by extension and creating
// the parent directory.
func Save(path string, img image.Image) error {
	return create(path, func(w io.Writer) error {
		return Encode(w, img, filepath.Ext(path))
	})
}

// SaveAnimation writes frames as a looping animated WebP, showing each
// frame for delay.
func SaveAnimation(path string, frames []*image.NRGBA, delay time.Duration, bg scene.Color) error {
	if len(frames) == 0 {
		return fmt.Errorf("imageio: %s: no frames", path)
	}
	ani := &nativewebp.Animation{
		Images:    make([]image.Image, len(frames)),
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
		LoopCount: 0, // forever
	}
	n := bg.NRGBA()
	// ANIM background is stored as BGRA.
	ani.BackgroundColor = uint32(n.B) | uint32(n.G)<<8 | uint32(n.R)<<16 | uint32(n.A)<<24
	ms := uint(delay / time.Millisecond)
	for i, f := range frames {
		ani.Images[i] = f
		ani.Durations[i] = ms
	}
	return create(path, func(w io.Writer) error {
		return nativewebp.EncodeAll(w, ani, nil)
	})
}

func create(path string, write func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("imageio: write %s: %w", path, err)
	}
	return f.Close()
}
