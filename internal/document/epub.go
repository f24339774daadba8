package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBFormat implements Format for EPUB files. Every spine item starts on
// a new page.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

func (f *EPUBFormat) Load(filename string, opts Options) (*Document, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	doc := &Document{Title: strings.TrimSpace(book.Title)}
	spine := make(map[string]spineInfo)

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		text, err := readItemText(ref.Item)
		if err != nil {
			continue
		}
		pages, _ := paginate([]string{text}, opts.wordsPerPage())
		if len(pages) == 0 {
			continue
		}

		info := spineInfo{page: doc.PageCount() + 1, preview: previewOf(text)}
		if ref.Item.HREF != "" {
			spine[ref.Item.HREF] = info
			spine[baseName(ref.Item.HREF)] = info
		}
		for _, p := range pages {
			p.Number = doc.PageCount() + 1
			doc.Pages = append(doc.Pages, p)
		}
	}
	if doc.PageCount() == 0 {
		return nil, ErrEmpty
	}

	// A missing or broken NCX only costs the table of contents.
	if toc, err := readTOC(filename, book, spine); err == nil {
		doc.TOC = toc
	}
	return doc, nil
}

func readItemText(item *epub.Item) (string, error) {
	r, err := item.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return extractTextFromHTML(string(data)), nil
}

func extractTextFromHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out.WriteString(t)
				out.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out.String()
}
