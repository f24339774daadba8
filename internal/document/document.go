// Package document loads files into fixed pages of text for the viewer.
package document

import (
	"errors"
	"strings"
)

// DefaultWordsPerPage is used to paginate formats without native pages.
const DefaultWordsPerPage = 250

var (
	// ErrEmpty is returned when a file has no pages or no readable text.
	ErrEmpty = errors.New("document has no readable content")
	// ErrUnsupported is returned for formats that cannot be paged.
	ErrUnsupported = errors.New("unsupported document format")
)

// Page is a single page of extracted text. Numbers start at 1.
type Page struct {
	Number int
	Text   string
}

// TOCEntry represents a single entry in a table of contents
type TOCEntry struct {
	Title   string
	Preview string
	Page    int
	Level   int
}

// Document is a loaded, paged document.
type Document struct {
	ID     string
	Path   string
	Title  string
	Format string
	Pages  []Page
	TOC    []TOCEntry
}

// Options control loading.
type Options struct {
	WordsPerPage int
}

func (o Options) wordsPerPage() int {
	if o.WordsPerPage > 0 {
		return o.WordsPerPage
	}
	return DefaultWordsPerPage
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Page returns page n, counting from 1.
func (d *Document) Page(n int) (Page, bool) {
	if n < 1 || n > len(d.Pages) {
		return Page{}, false
	}
	return d.Pages[n-1], true
}

// PageText returns the text of page n or "".
func (d *Document) PageText(n int) string {
	p, _ := d.Page(n)
	return p.Text
}

// Text returns the text of every page joined by blank lines.
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		if t := strings.TrimSpace(p.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// SectionAt returns the title of the innermost TOC entry starting on or
// before page n.
func (d *Document) SectionAt(n int) string {
	for i := len(d.TOC) - 1; i >= 0; i-- {
		if d.TOC[i].Page <= n {
			return d.TOC[i].Title
		}
	}
	return ""
}

// paginate splits paragraphs into pages of roughly perPage words. A
// paragraph never shares a page boundary unless it alone exceeds perPage.
// The second result maps each paragraph index to the page it starts on.
func paginate(paragraphs []string, perPage int) ([]Page, []int) {
	var (
		pages     []Page
		firstPage = make([]int, len(paragraphs))
		cur       []string
		count     int
	)

	flush := func() {
		if len(cur) == 0 {
			return
		}
		pages = append(pages, Page{
			Number: len(pages) + 1,
			Text:   strings.Join(cur, "\n\n"),
		})
		cur = nil
		count = 0
	}

	for i, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			firstPage[i] = len(pages) + 1
			continue
		}
		if count > 0 && count+len(words) > perPage {
			flush()
		}
		firstPage[i] = len(pages) + 1

		for len(words) > perPage-count {
			take := perPage - count
			cur = append(cur, strings.Join(words[:take], " "))
			words = words[take:]
			flush()
		}
		if len(words) > 0 {
			cur = append(cur, strings.Join(words, " "))
			count += len(words)
		}
	}
	flush()

	for i := range firstPage {
		if firstPage[i] > len(pages) {
			firstPage[i] = len(pages)
		}
	}
	return pages, firstPage
}

// splitParagraphs splits text on blank lines.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	var cur strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			continue
		}
		if cur.Len() > 0 {
			cur.WriteString(" ")
		}
		cur.WriteString(strings.TrimSpace(line))
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
