package document

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromHTML(t *testing.T) {
	htmlContent := `
	<html>
		<head><title>Test</title></head>
		<body>
			<h1>Chapter 1</h1>
			<p>This is the <b>first</b> paragraph.</p>
			<p>
				This is the second paragraph
				with a newline.
			</p>
			<div>Some <span>nested</span> text.</div>
		</body>
	</html>
	`
	expected := []string{"Test", "Chapter", "1", "This", "is", "the", "first", "paragraph.", "This", "is", "the",
		"second", "paragraph", "with", "a", "newline.", "Some", "nested", "text."}

	assert.Equal(t, expected, strings.Fields(extractTextFromHTML(htmlContent)))
}

func TestFlattenNavPoints(t *testing.T) {
	spine := map[string]spineInfo{
		"text/ch1.xhtml": {page: 1, preview: "Once upon a time..."},
		"ch2.xhtml":      {page: 4, preview: "Later..."},
	}
	points := []navPoint{
		{Label: navLabel{Text: " Chapter 1 "}, Content: navContent{Src: "text/ch1.xhtml"}},
		{
			Label:   navLabel{Text: "Chapter 2"},
			Content: navContent{Src: "text/ch2.xhtml#start"},
			Children: []navPoint{
				{Label: navLabel{Text: "Missing"}, Content: navContent{Src: "nowhere.xhtml"}},
			},
		},
	}

	got := flattenNavPoints(points, spine, 0)
	assert.Equal(t, []TOCEntry{
		{Title: "Chapter 1", Preview: "Once upon a time...", Page: 1, Level: 0},
		{Title: "Chapter 2", Preview: "Later...", Page: 4, Level: 0},
		{Title: "Missing", Page: 1, Level: 1},
	}, got)
}

func TestEPUBLoad(t *testing.T) {
	// Skip if SherlockHolmes.epub doesn't exist
	epubPath := "../../SherlockHolmes.epub"
	if _, err := os.Stat(epubPath); os.IsNotExist(err) {
		t.Skip("SherlockHolmes.epub not found, skipping test")
	}

	doc, err := Open(epubPath, Options{})
	require.NoError(t, err)
	assert.NotZero(t, doc.PageCount())
	assert.NotEmpty(t, doc.TOC)

	t.Logf("%q: %d pages, %d TOC entries", doc.Title, doc.PageCount(), len(doc.TOC))
	for i, entry := range doc.TOC {
		assert.LessOrEqual(t, entry.Page, doc.PageCount())
		t.Logf("%d. %*s%s (page %d)", i+1, entry.Level*2, "", entry.Title, entry.Page)
	}
}

func TestEPUBFormat(t *testing.T) {
	f := &EPUBFormat{}
	assert.Equal(t, "EPUB", f.Name())
	assert.Equal(t, []string{".epub"}, f.Extensions())
}
