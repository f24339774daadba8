package document

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// MarkdownFormat implements Format for Markdown files. Headers become
// table of contents entries.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

// headerRegex matches markdown headers (# to ######)
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

type mdHeading struct {
	title     string
	level     int
	paragraph int
}

func (f *MarkdownFormat) Load(filename string, opts Options) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		paragraphs []string
		headings   []mdHeading
		cur        []string
	)
	endParagraph := func() {
		if len(cur) > 0 {
			paragraphs = append(paragraphs, strings.Join(cur, " "))
			cur = nil
		}
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if match := headerRegex.FindStringSubmatch(line); match != nil {
			endParagraph()
			title := strings.TrimSpace(match[2])
			headings = append(headings, mdHeading{
				title:     title,
				level:     len(match[1]) - 1, // h1 = level 0, h2 = level 1, etc.
				paragraph: len(paragraphs),
			})
			paragraphs = append(paragraphs, title)
			continue
		}
		if line == "" {
			endParagraph()
			continue
		}
		cur = append(cur, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	endParagraph()

	pages, firstPage := paginate(paragraphs, opts.wordsPerPage())
	if len(pages) == 0 {
		return nil, ErrEmpty
	}

	doc := &Document{Pages: pages}
	for _, h := range headings {
		preview := ""
		if next := h.paragraph + 1; next < len(paragraphs) {
			preview = previewOf(paragraphs[next])
		}
		doc.TOC = append(doc.TOC, TOCEntry{
			Title:   h.title,
			Preview: preview,
			Page:    firstPage[h.paragraph],
			Level:   h.level,
		})
	}
	if len(headings) > 0 && headings[0].level == 0 {
		doc.Title = headings[0].title
	}
	return doc, nil
}

// previewOf returns the first ten words of text.
func previewOf(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if len(words) > 10 {
		return strings.Join(words[:10], " ") + "..."
	}
	return strings.Join(words, " ")
}
