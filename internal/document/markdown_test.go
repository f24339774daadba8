package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownTOC(t *testing.T) {
	content := `# Introduction
This is the introduction.

## Getting Started
Here's how to get started with the project.

### Prerequisites
You'll need these things installed.

## Usage
Here's how to use it.

# Advanced Topics
More complex stuff here.

## Configuration
Configure everything.
`
	path := writeFile(t, "test.md", content)

	doc, err := (&MarkdownFormat{}).Load(path, Options{WordsPerPage: 12})
	require.NoError(t, err)
	require.Len(t, doc.TOC, 6)

	var titles []string
	var levels []int
	for _, e := range doc.TOC {
		titles = append(titles, e.Title)
		levels = append(levels, e.Level)
	}
	assert.Equal(t, []string{"Introduction", "Getting Started", "Prerequisites", "Usage", "Advanced Topics", "Configuration"}, titles)
	assert.Equal(t, []int{0, 1, 2, 1, 0, 1}, levels)
	assert.Equal(t, "Introduction", doc.Title)
	assert.Equal(t, "This is the introduction.", doc.TOC[0].Preview)

	last := 0
	for i, e := range doc.TOC {
		assert.GreaterOrEqual(t, e.Page, last, "entry %d goes backwards", i)
		assert.LessOrEqual(t, e.Page, doc.PageCount())
		last = e.Page
	}
	assert.Greater(t, doc.PageCount(), 1)
}

func TestMarkdownHeadingLandsOnItsPage(t *testing.T) {
	content := "# One\n" + words(8) + "\n\n# Two\n" + words(8) + "\n"
	path := writeFile(t, "chapters.md", content)

	doc, err := (&MarkdownFormat{}).Load(path, Options{WordsPerPage: 10})
	require.NoError(t, err)
	require.Len(t, doc.TOC, 2)

	for _, e := range doc.TOC {
		assert.Contains(t, doc.PageText(e.Page), e.Title)
	}
	assert.Equal(t, "Two", doc.SectionAt(doc.PageCount()))
}

func TestMarkdownNoHeaders(t *testing.T) {
	content := `This is just plain text.
No headers at all.
Just paragraphs.
`
	path := writeFile(t, "plain.md", content)

	doc, err := Open(path, Options{})
	require.NoError(t, err)
	assert.Empty(t, doc.TOC)
	assert.Equal(t, "Markdown", doc.Format)
	assert.Equal(t, "plain", doc.Title)
	assert.Equal(t, "This is just plain text. No headers at all. Just paragraphs.", doc.PageText(1))
}
