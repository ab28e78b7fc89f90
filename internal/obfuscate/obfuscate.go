// Package obfuscate rewrites Lua source into a lightly obfuscated form:
// string literals become base64 payloads decoded at runtime, local variable
// names are shortened, comments are stripped, and whitespace is minified.
//
// The rewriting is best-effort lexical substitution over source text, not a
// real Lua parser. Renaming has no notion of scope, and pathological inputs
// (quotes inside comments, comment delimiters inside strings) can
// mis-extract. Any input, however malformed, still produces some output.
package obfuscate

// Output is the result of obfuscating one piece of source.
type Output struct {
	// Code is the assembled result: banner, decoder preamble, then the
	// transformed body.
	Code string
	// Literals is the number of string literals that were encoded.
	Literals int
	// Renamed is the number of distinct local names that were aliased.
	Renamed int
}

// Lua obfuscates a Lua source snippet. It is a pure function of its input
// and never fails; an empty input yields an empty body (the banner and
// decoder preamble are still present).
func Lua(source string) Output {
	literals := &literalTable{}
	aliases := newAliasTable()

	body := Chain(
		extractStrings(literals),
		stripComments(),
		renameLocals(aliases),
		minifyWhitespace(),
		encodeStrings(literals),
	).Apply(source)

	return Output{
		Code:     assemble(body),
		Literals: literals.len(),
		Renamed:  aliases.len(),
	}
}
