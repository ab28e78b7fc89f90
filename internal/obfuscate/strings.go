package obfuscate

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Double- or single-quoted literals, with escaped characters allowed
	// inside. Long-bracket strings are out of scope.
	luaString = regexp.MustCompile(`"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`)

	// Placeholder tokens standing in for extracted literals during the
	// intermediate passes. Underscore-delimited so whole-word renaming
	// cannot match inside one.
	placeholder = regexp.MustCompile(`__STR_(\d+)__`)
)

// literalTable holds extracted string literals, quotes included, in
// extraction order. The insertion index is the placeholder index.
type literalTable struct {
	raw []string
}

func (t *literalTable) len() int { return len(t.raw) }

// extractStrings replaces every quoted literal with a placeholder token and
// records the matched text verbatim.
func extractStrings(t *literalTable) PassFunc {
	return func(src string) string {
		return luaString.ReplaceAllStringFunc(src, func(match string) string {
			t.raw = append(t.raw, match)
			return fmt.Sprintf("__STR_%d__", len(t.raw)-1)
		})
	}
}

// encodeStrings resolves every placeholder still present back to its
// literal, re-emitted as a runtime decoder call carrying the base64 of the
// raw string contents. Placeholders that were lost to comment stripping
// simply never come back.
func encodeStrings(t *literalTable) PassFunc {
	return func(src string) string {
		return placeholder.ReplaceAllStringFunc(src, func(match string) string {
			idx, err := strconv.Atoi(placeholder.FindStringSubmatch(match)[1])
			if err != nil || idx >= len(t.raw) {
				return match
			}
			raw := t.raw[idx]
			quote := raw[0]
			contents := unescape(raw[1:len(raw)-1], quote)
			encoded := base64.StdEncoding.EncodeToString([]byte(contents))
			return `__B64("` + encoded + `")`
		})
	}
}

// unescape resolves the standard escape sequences (\n, \r, \t, \\) plus the
// literal's own quote character. Unknown escapes are left as-is.
func unescape(s string, quote byte) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case quote:
			b.WriteByte(quote)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
