// Package visualize renders grading output to raster images: the
// reference strokes in green, the user's strokes in black or red
// depending on their verdict. It consumes only the resampled pairs the
// grader produces; the grading engine itself never renders.
package visualize

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/nfnt/resize"

	"github.com/shodojo/tegaki/geometry"
	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/grader"
)

// DefaultSize is the output image edge length in pixels.
const DefaultSize = 436

var (
	white = color.RGBA{255, 255, 255, 255}
	green = color.RGBA{46, 125, 50, 255}
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{198, 40, 40, 255}
	gray  = color.RGBA{204, 204, 204, 255}
)

// Comparison plots compared stroke pairs on a white square canvas of the
// given pixel size. Reference strokes draw in green; user strokes in
// black when the stroke looked correct and red otherwise.
func Comparison(pairs []grader.StrokePair, size int) *image.RGBA {
	img := blank(size)
	scale := float64(size) / glyph.Extent

	for _, pair := range pairs {
		drawStroke(img, pair.Reference, scale, green)
	}
	for _, pair := range pairs {
		col := black
		if pair.Verdict == grader.VerdictOff {
			col = red
		}
		drawStroke(img, pair.User, scale, col)
	}

	return img
}

// Glyph plots only the reference strokes of a glyph, for guides and
// previews.
func Glyph(g *glyph.Glyph, size int) *image.RGBA {
	img := blank(size)
	scale := float64(size) / glyph.Extent

	for _, s := range g.Strokes {
		drawStroke(img, s, scale, green)
	}

	return img
}

// Progress plots a practice session in flight: accepted strokes in
// green, the not-yet-drawn reference strokes as faint gray guides.
func Progress(locked, remaining []geometry.Stroke, size int) *image.RGBA {
	img := blank(size)
	scale := float64(size) / glyph.Extent

	for _, s := range remaining {
		drawStroke(img, s, scale, gray)
	}
	for _, s := range locked {
		drawStroke(img, s, scale, green)
	}

	return img
}

// Thumbnail scales an image down to the given width, preserving aspect
// ratio.
func Thumbnail(img image.Image, width uint) image.Image {
	return resize.Resize(width, 0, img, resize.Lanczos3)
}

// WritePNG stores an image as a PNG file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func blank(size int) *image.RGBA {
	if size < 1 {
		size = DefaultSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
		img.Pix[i+1] = 255
		img.Pix[i+2] = 255
		img.Pix[i+3] = 255
	}
	return img
}

func drawStroke(img *image.RGBA, s geometry.Stroke, scale float64, col color.RGBA) {
	if len(s) == 1 {
		setPixel(img, s[0].X*scale, s[0].Y*scale, col)
		return
	}
	for i := 1; i < len(s); i++ {
		drawLine(img, s[i-1].X*scale, s[i-1].Y*scale, s[i].X*scale, s[i].Y*scale, col)
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		setPixel(img, x0+t*(x1-x0), y0+t*(y1-y0), col)
	}
}

func setPixel(img *image.RGBA, x, y float64, col color.RGBA) {
	px := int(math.Round(x))
	py := int(math.Round(y))
	if !(image.Point{X: px, Y: py}).In(img.Bounds()) {
		return
	}
	img.SetRGBA(px, py, col)
}
