package document

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reHSpace     = regexp.MustCompile(`[\t\f\v\p{Zs}]+`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText cleans extracted page text: NFC composition (so "Á" matches
// whether the PDF stored it precomposed or not), one kind of line break, single
// spaces, no trailing blanks. Line structure and digits are kept as is.
func NormalizeText(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFC.String(s)
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reHSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}
