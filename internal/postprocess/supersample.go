package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled frame to w×h. A line drawn at k times
// the output size covers fractional output pixels after the reduction,
// which softens its edges.
//
// The filter runs on premultiplied RGBA: a transparent backdrop pixel
// carries no color into its opaque neighbours. Frames already no larger
// than w×h are returned as is.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	src := img.Bounds()
	if src.Dx() <= w && src.Dy() <= h {
		return img
	}

	// NRGBA → RGBA premultiplies on the way in.
	premul := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(premul, premul.Bounds(), img, src.Min, draw.Src)

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(small, small.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// and RGBA → NRGBA divides the alpha back out.
	out := image.NewNRGBA(small.Bounds())
	draw.Draw(out, out.Bounds(), small, image.Point{}, draw.Src)
	return out
}
