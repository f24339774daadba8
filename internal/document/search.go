package document

import (
	"strings"
	"unicode/utf8"
)

const snippetRadius = 40

// Match is one search hit.
type Match struct {
	Page    int
	Snippet string
}

// Search finds query in the document, case-insensitively, and returns at
// most one match per page in page order. limit <= 0 means no limit.
func (d *Document) Search(query string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Match
	for _, p := range d.Pages {
		lower := strings.ToLower(p.Text)
		i := strings.Index(lower, q)
		if i < 0 {
			continue
		}
		// ToLower can change byte lengths; only index into the original
		// when they agree.
		text := p.Text
		if len(lower) != len(text) {
			text = lower
		}
		out = append(out, Match{Page: p.Number, Snippet: snippet(text, i, len(q))})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func snippet(text string, at, n int) string {
	start := max(0, at-snippetRadius)
	end := min(len(text), at+n+snippetRadius)
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	s := strings.Join(strings.Fields(text[start:end]), " ")
	if start > 0 {
		s = "..." + s
	}
	if end < len(text) {
		s += "..."
	}
	return s
}
