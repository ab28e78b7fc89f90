package obfuscate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(t *testing.T, out Output) string {
	t.Helper()
	prefix := assemble("")
	require.True(t, strings.HasPrefix(out.Code, prefix))
	return strings.TrimPrefix(out.Code, prefix)
}

func TestLua_EmptyInput(t *testing.T) {
	t.Parallel()

	out := Lua("")
	assert.Empty(t, body(t, out))
	assert.Zero(t, out.Literals)
	assert.Zero(t, out.Renamed)
}

func TestLua_PreambleAlwaysPresent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "print(1)", "garbage ((( not lua"} {
		out := Lua(input)
		assert.True(t, strings.HasPrefix(out.Code, banner+"\n\n"))
		assert.Contains(t, out.Code, decoderSource)
	}
}

func TestLua_EncodesStringLiterals(t *testing.T) {
	t.Parallel()

	out := Lua(`print("Hello Executor!")`)
	got := body(t, out)
	assert.Equal(t, `print(__B64("SGVsbG8gRXhlY3V0b3Ih"))`, got)
	assert.NotContains(t, got, `"Hello Executor!"`)
	assert.Equal(t, 1, out.Literals)
}

func TestLua_StripsCommentsAndRenamesLocals(t *testing.T) {
	t.Parallel()

	out := Lua("-- comment\nlocal x = 1\nprint(x)")
	got := body(t, out)
	assert.NotContains(t, got, "-- comment")
	assert.Equal(t, "local _a = 1\nprint(_a)", got)
	assert.Equal(t, 1, out.Renamed)
}

func TestLua_PassthroughInputs(t *testing.T) {
	t.Parallel()

	// Inputs with no literals, comments, or local declarations come out as
	// the input with blank lines removed and whitespace collapsed.
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already minimal",
			input: "print(1)",
			want:  "print(1)",
		},
		{
			name:  "whitespace collapsed",
			input: "print(  1   +  2 )",
			want:  "print( 1 + 2 )",
		},
		{
			name:  "blank lines dropped",
			input: "print(1)\n\n\nprint(2)\n",
			want:  "print(1)\nprint(2)",
		},
		{
			name:  "leading and trailing space trimmed",
			input: "   print(1)   ",
			want:  "print(1)",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, body(t, Lua(test.input)))
		})
	}
}

func TestLua_SinglePass(t *testing.T) {
	t.Parallel()

	// The transform is single-pass only: feeding output back in re-extracts
	// the emitted decoder calls as fresh string literals, so a second pass
	// rewrites them rather than leaving them stable.
	first := Lua(`print("Hello Executor!")`)
	second := Lua(first.Code)
	assert.NotEqual(t, first.Code, second.Code)
	assert.NotContains(t, second.Code[len(assemble("")):], `__B64("SGVsbG8gRXhlY3V0b3Ih")`)
}

func TestLua_EscapedQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "escaped double quote",
			input: `print("say \"hi\"")`,
			want:  `print(__B64("c2F5ICJoaSI="))`, // say "hi"
		},
		{
			name:  "escaped single quote",
			input: `local s = 'it\'s'`,
			want:  `local _a = __B64("aXQncw==")`, // it's
		},
		{
			name:  "escaped newline",
			input: `print("a\nb")`,
			want:  `print(__B64("YQpi"))`,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, body(t, Lua(test.input)))
		})
	}
}

func TestLua_BlockComments(t *testing.T) {
	t.Parallel()

	out := Lua("--[[ multi\nline comment ]]--\nprint(1)")
	assert.Equal(t, "print(1)", body(t, out))
}

func TestLua_CommentDoesNotEatCode(t *testing.T) {
	t.Parallel()

	out := Lua("print(1) -- trailing note\nprint(2)")
	assert.Equal(t, "print(1)\nprint(2)", body(t, out))
}

func TestLua_ManyLocals(t *testing.T) {
	t.Parallel()

	// 28 distinct locals spill past _z into the two-letter alias space
	// without colliding.
	var src strings.Builder
	for i := 0; i < 28; i++ {
		fmt.Fprintf(&src, "local v%d = %d\n", i, i)
	}
	out := Lua(src.String())
	got := body(t, out)

	assert.Equal(t, 28, out.Renamed)
	assert.Contains(t, got, "local _a = 0")
	assert.Contains(t, got, "local _z = 25")
	assert.Contains(t, got, "local _aa = 26")
	assert.Contains(t, got, "local _ab = 27")
	assert.NotContains(t, got, "v0")
	assert.NotContains(t, got, "v27")
}

func TestLua_LocalFunctionKeptCallable(t *testing.T) {
	t.Parallel()

	// "function" after "local" is a keyword, not a renameable name.
	out := Lua("local function greet()\nreturn 1\nend\ngreet()")
	got := body(t, out)
	assert.Contains(t, got, "local function greet()")
	assert.NotContains(t, got, "local function _a")
}

func TestShortAlias(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index int
		want  string
	}{
		{0, "_a"},
		{1, "_b"},
		{25, "_z"},
		{26, "_aa"},
		{27, "_ab"},
		{51, "_az"},
		{52, "_ba"},
		{701, "_zz"},
		{702, "_aaa"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, shortAlias(test.index), "index %d", test.index)
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		quote byte
		want  string
	}{
		{"no escapes", "plain", '"', "plain"},
		{"newline", `a\nb`, '"', "a\nb"},
		{"carriage return", `a\rb`, '"', "a\rb"},
		{"tab", `a\tb`, '"', "a\tb"},
		{"backslash", `a\\b`, '"', `a\b`},
		{"own quote", `a\"b`, '"', `a"b`},
		{"other quote untouched", `a\'b`, '"', `a\'b`},
		{"unknown escape untouched", `a\zb`, '"', `a\zb`},
		{"trailing backslash", `a\`, '"', `a\`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, unescape(test.input, test.quote))
		})
	}
}
