package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	doc := &Document{Pages: []Page{
		{Number: 1, Text: "The quick brown fox."},
		{Number: 2, Text: "Nothing here."},
		{Number: 3, Text: "A FOX again, and another fox."},
	}}

	got := doc.Search("fox", 0)
	require.Len(t, got, 2)
	assert.Equal(t, Match{Page: 1, Snippet: "The quick brown fox."}, got[0])
	assert.Equal(t, 3, got[1].Page)
	assert.Contains(t, got[1].Snippet, "FOX")

	assert.Len(t, doc.Search("fox", 1), 1)
	assert.Empty(t, doc.Search("  ", 0))
	assert.Empty(t, doc.Search("wolf", 0))
}

func TestSearchSnippetIsTrimmed(t *testing.T) {
	text := strings.Repeat("lorem ", 30) + "needle" + strings.Repeat(" ipsum", 30)
	doc := &Document{Pages: []Page{{Number: 1, Text: text}}}

	got := doc.Search("needle", 0)
	require.Len(t, got, 1)
	s := got[0].Snippet
	assert.True(t, strings.HasPrefix(s, "..."))
	assert.True(t, strings.HasSuffix(s, "..."))
	assert.Contains(t, s, "needle")
	assert.Less(t, len(s), len(text))
}
