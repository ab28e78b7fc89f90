package obfuscate

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// minifyWhitespace collapses intra-line whitespace runs to a single space,
// trims every line, and drops lines that end up empty.
func minifyWhitespace() PassFunc {
	return func(src string) string {
		var kept []string
		for _, line := range strings.Split(src, "\n") {
			line = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
			if line == "" {
				continue
			}
			kept = append(kept, line)
		}
		return strings.Join(kept, "\n")
	}
}
