// Package pdftext reads page text and tables out of statement PDFs.
package pdftext

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/bankfusion/bankfusion/internal/extractor"
)

// ErrNoPages is returned for PDFs without a readable page.
var ErrNoPages = errors.New("pdf has no pages")

// Reader yields the per-page text and tables of one PDF.
type Reader interface {
	Read(ctx context.Context, path string) (extractor.Document, error)
}

// PDFReader reads PDFs from disk.
type PDFReader struct{}

// Read opens path and lays out every non-empty page.
func (PDFReader) Read(ctx context.Context, path string) (extractor.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return extractor.Document{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	if n == 0 {
		return extractor.Document{}, ErrNoPages
	}

	var doc extractor.Document
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return extractor.Document{}, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		page, err := readPage(p)
		if err != nil {
			return extractor.Document{}, fmt.Errorf("page %d: %w", i, err)
		}
		doc.Pages = append(doc.Pages, page)
	}
	if len(doc.Pages) == 0 {
		return extractor.Document{}, ErrNoPages
	}
	return doc, nil
}

func readPage(p pdf.Page) (extractor.Page, error) {
	rows, err := p.GetTextByRow()
	if err != nil || len(rows) == 0 {
		text, perr := p.GetPlainText(nil)
		if perr != nil {
			return extractor.Page{}, fmt.Errorf("reading text: %w", perr)
		}
		return extractor.Page{Text: text}, nil
	}

	glyphRows := make([][]Glyph, 0, len(rows))
	for _, row := range rows {
		glyphs := make([]Glyph, 0, len(row.Content))
		for _, t := range row.Content {
			glyphs = append(glyphs, Glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
		}
		glyphRows = append(glyphRows, glyphs)
	}
	return Layout(glyphRows), nil
}
