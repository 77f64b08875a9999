package render

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// face returns a font face at the given point size. The display face is
// parsed once from the configured font file; when the file is missing or
// unparseable the fixed basicfont face stands in, so rendering still
// proceeds (asset absence is never fatal).
func (r *Renderer) face(points float64) font.Face {
	r.fontOnce.Do(func() {
		data, err := os.ReadFile(r.fontPath)
		if err != nil {
			return
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			return
		}
		r.font = parsed
	})

	if r.font == nil {
		return basicfont.Face7x13
	}

	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return f
}
