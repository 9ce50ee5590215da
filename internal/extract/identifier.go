package extract

import (
	"fmt"
	"strconv"
)

// FindIdentifier returns the first digits-long numeric token whose value lies
// in [min, max]. Candidates come from segment; full is only searched when
// segment holds no candidate at all. A token must not touch another digit on
// either side, so windows inside longer digit runs never match.
func FindIdentifier(segment, full string, digits, min, max int) (string, bool) {
	candidates := digitRuns(segment, digits)
	if len(candidates) == 0 {
		candidates = digitRuns(full, digits)
	}
	for _, c := range candidates {
		n, err := strconv.Atoi(c)
		if err != nil {
			continue
		}
		if n >= min && n <= max {
			return fmt.Sprintf("%0*d", digits, n), true
		}
	}
	return "", false
}

// digitRuns lists every maximal run of ASCII digits that is exactly n long.
func digitRuns(s string, n int) []string {
	var out []string
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j-i == n {
			out = append(out, s[i:j])
		}
		i = j
	}
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
