package assistant

import (
	"fmt"
	"strings"
)

// Language is a translation target.
type Language string

const (
	English Language = "english"
	Spanish Language = "spanish"
	French  Language = "french"
	German  Language = "german"
	Arabic  Language = "arabic"
	Urdu    Language = "urdu"
	Hindi   Language = "hindi"
)

// Languages lists the supported targets in selector order.
var Languages = []Language{English, Spanish, French, German, Arabic, Urdu, Hindi}

// Title returns the display name.
func (l Language) Title() string {
	s := string(l)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseLanguage accepts a language name, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Languages {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// SummaryLength controls how long a summary is.
type SummaryLength string

const (
	SummaryBrief    SummaryLength = "brief"
	SummaryMedium   SummaryLength = "medium"
	SummaryDetailed SummaryLength = "detailed"
)

var SummaryLengths = []SummaryLength{SummaryBrief, SummaryMedium, SummaryDetailed}

func (s SummaryLength) instruction() string {
	switch s {
	case SummaryBrief:
		return "in one or two sentences"
	case SummaryDetailed:
		return "in several paragraphs"
	}
	return "in one paragraph"
}

// Next cycles through the lengths.
func (s SummaryLength) Next() SummaryLength {
	for i, l := range SummaryLengths {
		if l == s {
			return SummaryLengths[(i+1)%len(SummaryLengths)]
		}
	}
	return SummaryMedium
}

// NextLanguage cycles through Languages.
func NextLanguage(l Language) Language {
	for i, known := range Languages {
		if known == l {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return English
}
