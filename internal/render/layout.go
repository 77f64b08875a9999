package render

import (
	"image"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// drawWrappedCenter lays out wrapped lines stacked downward by lineHeight,
// each centered at centerX with its baseline on the current line's y.
func drawWrappedCenter(dc *gg.Context, text string, centerX, startY, maxWidth, lineHeight float64) {
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}

	y := startY
	for _, line := range WrapWords(measure, text, maxWidth) {
		dc.DrawStringAnchored(line, centerX, y, 0.5, 0)
		y += lineHeight
	}
}

// drawWrappedLeft is the left-anchored variant used by the compact report
// layout.
func drawWrappedLeft(dc *gg.Context, text string, x, startY, maxWidth, lineHeight float64) {
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}

	y := startY
	for _, line := range WrapWords(measure, text, maxWidth) {
		dc.DrawString(line, x, y)
		y += lineHeight
	}
}

// drawImageScaled paints img into the w x h box anchored at (x, y).
func drawImageScaled(dc *gg.Context, img image.Image, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}

	bounds := img.Bounds()
	if bounds.Dx() == w && bounds.Dy() == h {
		dc.DrawImage(img, x, y)
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)
	dc.DrawImage(scaled, x, y)
}
