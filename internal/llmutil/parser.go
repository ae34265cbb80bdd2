// internal/llmutil/parser.go
package llmutil

import (
	"regexp"
	"strconv"
	"strings"
)

// digitRunRegex matches maximal runs of ASCII digits.
var digitRunRegex = regexp.MustCompile(`[0-9]+`)

// IntSource is a source of uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type IntSource interface {
	IntN(n int) int
}

// ExtractActionIndex turns a free-form model reply into an index in
// [0, maxExclusive). It tries, in order:
//
//  1. the whole trimmed reply as an integer;
//  2. each maximal digit run, left to right, taking the first in range;
//  3. a uniform random pick from rng.
//
// forced reports that step 3 was taken. The function never fails; for
// maxExclusive < 1 there is no valid index and it returns (0, true).
func ExtractActionIndex(text string, maxExclusive int, rng IntSource) (index int, forced bool) {
	if maxExclusive < 1 {
		return 0, true
	}

	text = strings.TrimSpace(text)

	if n, err := strconv.Atoi(text); err == nil && inRange(n, maxExclusive) {
		return n, false
	}

	for _, run := range digitRunRegex.FindAllString(text, -1) {
		n, err := strconv.Atoi(run)
		if err != nil {
			// Runs too long for an int cannot be in range.
			continue
		}
		if inRange(n, maxExclusive) {
			return n, false
		}
	}

	return rng.IntN(maxExclusive), true
}

func inRange(n, maxExclusive int) bool {
	return n >= 0 && n < maxExclusive
}

// Truncate shortens s to at most maxLen runes for log fields, appending "..."
// when it cuts. The cut never splits a multi-byte rune.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == maxLen {
			return s[:i] + "..."
		}
		count++
	}
	return s
}
