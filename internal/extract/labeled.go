package extract

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// nonWord matches what sits between a label and its colon ("Nome do:").
	nonWord = `[^\p{L}\p{N}_]*`
	space   = `[\s\p{Z}]*`
)

// labeledField is a compiled FieldRule.
type labeledField struct {
	label       *regexp.Regexp
	terminators []*regexp.Regexp
}

func compileField(rule FieldRule) labeledField {
	// Tolerates `Nome:","João"` exports and a quoted value.
	label := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(rule.Label) + nonWord + `:` + space + `(?:",")?` + space + `"?` + space)
	terms := make([]*regexp.Regexp, 0, len(rule.Terminators)+1)
	terms = append(terms, regexp.MustCompile(`"`))
	for _, t := range rule.Terminators {
		if t == "" || t == `"` {
			continue
		}
		terms = append(terms, foldLiteral(t))
	}
	return labeledField{label: label, terminators: terms}
}

// find returns the raw capture after the label, before the nearest terminator.
func (f labeledField) find(text string) (string, bool) {
	loc := f.label.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return Capture(text, loc[1], f.terminators)
}

// LabeledField extracts the normalized value following label in text, bounded
// by the first of terminators (or a double quote). Matching ignores case and
// the value may span lines.
func LabeledField(text string, rule FieldRule) (string, bool) {
	raw, ok := compileField(rule).find(text)
	if !ok {
		return "", false
	}
	v := Clean(raw)
	return v, v != ""
}

// Capture returns text[start:k] where k is the earliest match of any
// terminator at or after start. It reports false when none occurs.
func Capture(text string, start int, terminators []*regexp.Regexp) (string, bool) {
	if start < 0 || start > len(text) {
		return "", false
	}
	rest := text[start:]
	end := -1
	for _, t := range terminators {
		loc := t.FindStringIndex(rest)
		if loc != nil && (end < 0 || loc[0] < end) {
			end = loc[0]
		}
	}
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// Clean drops quotes, folds every whitespace run (line breaks included) into a
// single space and trims surrounding spaces and commas.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
	s = strings.Trim(s, ",")
	return strings.TrimSpace(s)
}
