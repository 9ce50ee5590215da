package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ClassifyDescription reports whether the span between label and terminator
// holds more than minLen characters once whitespace and light punctuation are
// removed. A missing label or terminator counts as absent.
func ClassifyDescription(text, label, terminator string, minLen int) DescriptionStatus {
	return classifyDescription(text, descriptionLabel(label), foldLiteral(terminator), minLen)
}

func descriptionLabel(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + nonWord + `:`)
}

func classifyDescription(text string, label, terminator *regexp.Regexp, minLen int) DescriptionStatus {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return DescriptionAbsent
	}
	body, ok := Capture(text, loc[1], []*regexp.Regexp{terminator})
	if !ok {
		return DescriptionAbsent
	}
	if utf8.RuneCountInString(stripFiller(body)) > minLen {
		return DescriptionPresent
	}
	return DescriptionAbsent
}

// stripFiller removes whitespace and the . , ; : " characters.
func stripFiller(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		switch r {
		case '.', ',', ';', ':', '"':
			return -1
		}
		return r
	}, s)
}
