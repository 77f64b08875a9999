package render

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
)

// LoadImage decodes one asset from disk. A missing file is an expected
// condition and reports present=false without an error; only unreadable or
// undecodable files produce one.
func LoadImage(path string) (image.Image, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, false, err
	}
	return img, true, nil
}

// overlay resolves an asset by name under the renderer's asset directory.
// Rendering is best-effort: a broken asset counts as absent.
func (r *Renderer) overlay(name string) (image.Image, bool) {
	img, ok, err := LoadImage(filepath.Join(r.assetsDir, name))
	if err != nil {
		return nil, false
	}
	return img, ok
}
