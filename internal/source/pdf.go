package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

const pdfRenderDPI = 150

// PDFSource treats each page of a PDF as one input image.
type PDFSource struct {
	doc  *fitz.Document
	base string
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &PDFSource{doc: doc, base: base}, nil
}

func (p *PDFSource) Count() int {
	return p.doc.NumPage()
}

func (p *PDFSource) Name(i int) string {
	return fmt.Sprintf("%s-page-%03d.png", p.base, i+1)
}

func (p *PDFSource) Image(i int) (image.Image, string, error) {
	img, err := p.doc.ImageDPI(i, pdfRenderDPI)
	if err != nil {
		return nil, "", fmt.Errorf("render page %d: %w", i+1, err)
	}
	return img, "png", nil
}

func (p *PDFSource) Close() error {
	return p.doc.Close()
}
