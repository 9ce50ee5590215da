package extract

import "regexp"

// Segment returns the text strictly after the first case-insensitive
// occurrence of heading, or text unchanged when the heading is missing.
func Segment(text, heading string) string {
	if heading == "" {
		return text
	}
	return segment(text, foldLiteral(heading))
}

func segment(text string, heading *regexp.Regexp) string {
	if heading == nil {
		return text
	}
	loc := heading.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[1]:]
}

// foldLiteral compiles a case-insensitive matcher for a literal string.
func foldLiteral(s string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(s))
}
