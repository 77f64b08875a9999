package render

import (
	"path/filepath"
	"sync"

	"golang.org/x/image/font/opentype"
)

// Artifact is one finished document: encoded image bytes plus the canvas
// dimensions the document was drawn on.
type Artifact struct {
	Data   []byte
	Width  int
	Height int
}

// Renderer draws diplomas and operation reports onto raster canvases. It
// performs no network I/O and no persistence; callers own delivery.
type Renderer struct {
	assetsDir string
	fontPath  string

	fontOnce sync.Once
	font     *opentype.Font
}

func New(assetsDir string, fontFile string) *Renderer {
	fontPath := fontFile
	if fontPath != "" && !filepath.IsAbs(fontPath) {
		fontPath = filepath.Join(assetsDir, fontPath)
	}
	return &Renderer{
		assetsDir: assetsDir,
		fontPath:  fontPath,
	}
}
