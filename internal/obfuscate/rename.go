package obfuscate

import "regexp"

// localDecl matches a local declaration keyword followed by the declared
// name. Only the first name of a multi-assignment is collected.
var localDecl = regexp.MustCompile(`\blocal\s+([A-Za-z_][A-Za-z0-9_]*)`)

// luaReserved is the Lua 5.x keyword set. `local function f` would
// otherwise collect "function" as a declared name and renaming it would
// destroy the program.
var luaReserved = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// aliasTable assigns each discovered local name a short alias in
// first-seen order.
type aliasTable struct {
	order []string
	alias map[string]string
}

func newAliasTable() *aliasTable {
	return &aliasTable{alias: map[string]string{}}
}

func (t *aliasTable) len() int { return len(t.order) }

func (t *aliasTable) assign(name string) {
	if _, ok := t.alias[name]; ok {
		return
	}
	t.alias[name] = shortAlias(len(t.order))
	t.order = append(t.order, name)
}

// shortAlias maps an assignment index to an alias: _a through _z, then
// _aa, _ab and so on. The alias space is unbounded, so distinct names
// never collide no matter how many locals a script declares.
func shortAlias(i int) string {
	var letters []byte
	for {
		letters = append([]byte{byte('a' + i%26)}, letters...)
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return "_" + string(letters)
}

// renameLocals collects declared local names and substitutes every
// whole-word occurrence of each with its alias. Substitution is purely
// textual: there is no scope tracking, so a shadowed or unrelated
// same-named identifier is rewritten too.
func renameLocals(t *aliasTable) PassFunc {
	return func(src string) string {
		for _, m := range localDecl.FindAllStringSubmatch(src, -1) {
			if name := m[1]; !luaReserved[name] {
				t.assign(name)
			}
		}
		for _, name := range t.order {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
			src = re.ReplaceAllString(src, t.alias[name])
		}
		return src
	}
}
