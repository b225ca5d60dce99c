package postprocess

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"wireframe-renderer/internal/scene"
)

const annotateMargin = 4

// Annotate draws lines of text in the top-left corner of img, in place,
// with the fixed 7x13 bitmap font. Lines that fall below the image are
// dropped and lines wider than it are cut to whole glyphs.
func Annotate(img draw.Image, lines []string, col scene.Color) {
	face := basicfont.Face7x13
	m := face.Metrics()
	lineHeight := m.Height.Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col.NRGBA()),
		Face: face,
	}
	b := img.Bounds()
	y := b.Min.Y + annotateMargin + m.Ascent.Ceil()
	avail := b.Dx() - 2*annotateMargin
	for _, line := range lines {
		if y > b.Max.Y {
			break
		}
		for line != "" && TextWidth(line) > avail {
			line = line[:len(line)-1]
		}
		d.Dot = fixed.P(b.Min.X+annotateMargin, y)
		d.DrawString(line)
		y += lineHeight
	}
}

// TextWidth returns the advance of s in pixels in the annotation font.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
