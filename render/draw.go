package render

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var font *truetype.Font

// init sets up the fonts we want to use.
func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// Font returns the font we use for drawing.
func Font() *truetype.Font {
	return font
}

// DrawString writes a string to the given context anchored at (x, y). ax and ay place the anchor as in
// gg.Context.DrawStringAnchored.
func DrawString(dc *gg.Context, text string, x, y, ax, ay float64, c color.Color, size float64) {
	dc.SetFontFace(truetype.NewFace(Font(), &truetype.Options{Size: size}))
	dc.SetColor(c)
	dc.DrawStringAnchored(text, x, y, ax, ay)
}

// DrawCircle fills a circle and optionally outlines it. A nil stroke skips the outline.
func DrawCircle(dc *gg.Context, x, y, r float64, fill, stroke color.Color, width float64) {
	dc.DrawCircle(x, y, r)
	if fill != nil {
		dc.SetColor(fill)
		if stroke != nil {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if stroke != nil {
		dc.SetColor(stroke)
		dc.SetLineWidth(width)
		dc.Stroke()
	}
}
