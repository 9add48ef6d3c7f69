// Package sheet exports printable practice sheets: the reference glyph
// drawn large in the first cell, followed by a grid of practice cells,
// optionally with faint stroke guides to trace over.
package sheet

import (
	"fmt"

	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/contentstream/draw"
	"github.com/unidoc/unipdf/v3/creator"

	"github.com/shodojo/tegaki/glyph"
)

var sheetPageSize = creator.PageSize{445, 594}

// Options configures a practice sheet.
type Options struct {
	// Columns and Rows of practice cells; defaults 4x5.
	Columns int
	Rows    int
	// Guides draws a faint copy of the reference strokes in every
	// practice cell.
	Guides bool
	// Title toggles the header line with the character and its meaning.
	Title bool
}

// Generator renders practice sheets for one glyph.
type Generator struct {
	glyph          *glyph.Glyph
	outputFilePath string
	options        Options
}

func NewGenerator(g *glyph.Glyph, outputFilePath string, options Options) *Generator {
	if options.Columns < 1 {
		options.Columns = 4
	}
	if options.Rows < 1 {
		options.Rows = 5
	}
	return &Generator{glyph: g, outputFilePath: outputFilePath, options: options}
}

func (s *Generator) Generate() error {
	if err := s.glyph.Validate(); err != nil {
		return err
	}

	c := creator.New()
	c.SetPageSize(sheetPageSize)
	page := c.NewPage()

	margin := 20.0
	headerHeight := 0.0

	// The header sticks to the built-in latin font; the character itself
	// appears as strokes in the first cell, so the title only names the
	// meaning.
	if s.options.Title && s.glyph.Meaning != "" {
		headerHeight = 40.0
		p := c.NewParagraph(fmt.Sprintf("practice sheet: %s", s.glyph.Meaning))
		p.SetFontSize(14)
		p.SetPos(margin, margin)
		if err := c.Draw(p); err != nil {
			return err
		}
	}

	cellWidth := (c.Width() - 2*margin) / float64(s.options.Columns)
	gridTop := margin + headerHeight
	gridHeight := c.Height() - gridTop - margin
	cellHeight := gridHeight / float64(s.options.Rows)
	if cellWidth < cellHeight {
		cellHeight = cellWidth
	}

	contentCreator := contentstream.NewContentCreator()

	for row := 0; row < s.options.Rows; row++ {
		for col := 0; col < s.options.Columns; col++ {
			x := margin + float64(col)*cellWidth
			y := gridTop + float64(row)*cellHeight

			drawCellBorder(c, contentCreator, x, y, cellWidth, cellHeight)

			// First cell carries the full reference; the rest are for
			// practicing, with optional faint guides.
			if row == 0 && col == 0 {
				s.drawGlyph(c, contentCreator, x, y, cellWidth, cellHeight, 0, 0, 0)
			} else if s.options.Guides {
				s.drawGlyph(c, contentCreator, x, y, cellWidth, cellHeight, 0.8, 0.8, 0.8)
			}
		}
	}

	ops := contentCreator.Operations()
	if err := page.AppendContentStream(string(ops.Bytes())); err != nil {
		return err
	}

	return c.WriteToFile(s.outputFilePath)
}

func drawCellBorder(c *creator.Creator, cc *contentstream.ContentCreator, x, y, w, h float64) {
	path := draw.NewPath()
	path = path.AppendPoint(draw.NewPoint(x, c.Height()-y))
	path = path.AppendPoint(draw.NewPoint(x+w, c.Height()-y))
	path = path.AppendPoint(draw.NewPoint(x+w, c.Height()-(y+h)))
	path = path.AppendPoint(draw.NewPoint(x, c.Height()-(y+h)))
	path = path.AppendPoint(draw.NewPoint(x, c.Height()-y))

	cc.Add_q()
	cc.Add_w(0.5)
	cc.Add_RG(0.6, 0.6, 0.6)
	draw.DrawPathWithCreator(path, cc)
	cc.Add_S()
	cc.Add_Q()
}

// drawGlyph maps the glyph's 109x109 space into a cell, inset slightly,
// and strokes every reference polyline.
func (s *Generator) drawGlyph(c *creator.Creator, cc *contentstream.ContentCreator, x, y, w, h float64, r, g, b float64) {
	inset := 0.1 * w
	ratio := (w - 2*inset) / glyph.Extent
	if hr := (h - 2*inset) / glyph.Extent; hr < ratio {
		ratio = hr
	}

	for _, stroke := range s.glyph.Strokes {
		if len(stroke) < 1 {
			continue
		}

		path := draw.NewPath()
		for _, p := range stroke {
			px := x + inset + p.X*ratio
			py := y + inset + p.Y*ratio
			path = path.AppendPoint(draw.NewPoint(px, c.Height()-py))
		}

		cc.Add_q()
		cc.Add_w(1.5)
		cc.Add_RG(r, g, b)
		draw.DrawPathWithCreator(path, cc)
		cc.Add_S()
		cc.Add_Q()
	}
}
