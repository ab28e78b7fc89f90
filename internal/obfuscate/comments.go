package obfuscate

import "regexp"

var (
	// Block comments, including the optional trailing -- some authors close
	// with. Non-greedy so adjacent blocks stay separate.
	blockComment = regexp.MustCompile(`(?s)--\[\[.*?\]\](?:--)?`)

	// Line comments up to (not including) the end of line.
	lineComment = regexp.MustCompile(`--[^\n]*`)
)

// stripComments removes block comments entirely and replaces line comments
// with a bare newline so line structure survives until minification.
func stripComments() PassFunc {
	return func(src string) string {
		src = blockComment.ReplaceAllString(src, "")
		return lineComment.ReplaceAllString(src, "\n")
	}
}
