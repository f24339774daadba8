package document

import (
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFFormat implements Format for PDF files. Pages map one to one onto
// the file's pages; pages without extractable text stay empty.
type PDFFormat struct{}

func init() {
	Register(&PDFFormat{})
}

func (f *PDFFormat) Name() string         { return "PDF" }
func (f *PDFFormat) Extensions() []string { return []string{".pdf"} }

func (f *PDFFormat) Load(filename string, _ Options) (*Document, error) {
	file, r, err := lpdf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	count := PageCount(filename, r)
	if count == 0 {
		return nil, ErrEmpty
	}

	doc := &Document{Pages: make([]Page, count)}
	for i := 1; i <= count; i++ {
		doc.Pages[i-1] = Page{Number: i, Text: pageText(r, i)}
	}
	return doc, nil
}

// PageCount asks pdfcpu first and falls back to the text reader's count
// for files pdfcpu refuses to parse.
func PageCount(filename string, r *lpdf.Reader) int {
	if n, err := api.PageCountFile(filename); err == nil && n > 0 {
		return n
	}
	if r == nil {
		return 0
	}
	return r.NumPage()
}

// pageText extracts plain text from page n. Malformed content streams can
// panic inside the reader; those pages come back empty.
func pageText(r *lpdf.Reader, n int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if n > r.NumPage() {
		return ""
	}
	p := r.Page(n)
	if p.V.IsNull() {
		return ""
	}
	raw, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return tidyPDFText(raw)
}

// tidyPDFText collapses the extractor's line noise into paragraphs.
func tidyPDFText(raw string) string {
	paras := splitParagraphs(raw)
	return strings.Join(paras, "\n\n")
}
