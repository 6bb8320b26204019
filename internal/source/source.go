package source

import (
	"image"
	"path/filepath"
	"strings"
)

// Source yields the images of one input: a single image file, a directory of
// images, or the pages of a PDF.
type Source interface {
	Count() int
	// Name returns a display name for item i, used for result rows and
	// export filenames.
	Name(i int) string
	// Image decodes item i and returns it with its format name.
	Image(i int) (image.Image, string, error)
	Close() error
}

// Open dispatches on the path: PDFs open as page sources, everything else as
// an image source (single file or directory).
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFSource(path)
	}
	return NewImageSource(path)
}
