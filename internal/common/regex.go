package common

import (
	"regexp"
	"strings"
)

// FirstSubmatch tries each pattern in order and returns the trimmed first
// capture group of the first pattern that yields a non-empty capture.
func FirstSubmatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if captured := strings.TrimSpace(m[1]); captured != "" {
			return captured, true
		}
	}
	return "", false
}
