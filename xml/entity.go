package xml

import "regexp"

// predefinedEntities is the fixed table of spec.md §3's five built-in
// general entities, always available regardless of DTD presence.
var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// EntitySource is the subset of a Grammar an entity expander needs:
// looking up a general entity's replacement text by name. grammar.Grammar
// implementations satisfy this without xml/ importing grammar/ (which
// would be an import cycle, since grammar/ needs xml.Attribute and
// xml.Error).
type EntitySource interface {
	// ResolveEntity returns the replacement text for name, whether it is
	// external (and therefore unsupported for inline expansion per
	// spec.md §9's Open Question), and whether name is declared at all.
	ResolveEntity(name string) (value string, external bool, ok bool)
}

// singleConstructRe matches the one class of markup-bearing replacement
// text this core accepts without treating it as "unsupported": a
// replacement text that is itself exactly one character reference or one
// predefined-entity reference, anchored at both ends (spec.md §9, Open
// Question #1 resolution recorded in DESIGN.md). It is consulted only for
// replacement text containing '<', which it never matches, so every such
// replacement text is rejected rather than silently flattened, since
// re-parsing arbitrary markup from entity expansion would require
// re-entering the scanner mid-stream. '&' references inside replacement
// text are not rejected; expand resolves them recursively.
var singleConstructRe = regexp.MustCompile(`^(&#x?[0-9A-Fa-f]+;|&(?:lt|gt|amp|apos|quot);)$`)

// entityExpander expands general entity references found in attribute
// values and character content, guarding against unbounded recursion.
type entityExpander struct {
	source  EntitySource
	version string
}

func newEntityExpander(source EntitySource, version string) *entityExpander {
	return &entityExpander{source: source, version: version}
}

// expand replaces every &name; and &#...; reference in s. visited guards
// against an entity that (directly or transitively) references itself;
// the caller passes a fresh set at the top-level call (empty, or holding
// the name of the entity whose replacement text is being expanded) and
// expand threads it down recursively.
func (ex *entityExpander) expand(s string, visited map[string]bool) (string, *Error) {
	var out []rune
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '&' {
			out = append(out, runes[i])
			continue
		}
		end := indexRune(runes[i:], ';')
		if end < 0 {
			return "", wellFormednessError("unterminated entity or character reference")
		}
		ref := string(runes[i : i+end+1])
		i += end

		if r, ok, err := decodeCharRef(ref); err != nil {
			return "", err
		} else if ok {
			if !isInCharacterRange(r, ex.version) {
				return "", invalidCodePointError(r)
			}
			out = append(out, r)
			continue
		}

		name := ref[1 : len(ref)-1]
		if repl, ok := predefinedEntities[name]; ok {
			out = append(out, []rune(repl)...)
			continue
		}

		if ex.source == nil {
			return "", wellFormednessError("undeclared entity %q", name).WithName(name)
		}
		value, external, ok := ex.source.ResolveEntity(name)
		if !ok {
			return "", wellFormednessError("undeclared entity %q", name).WithName(name)
		}
		if external {
			return "", NewGrammarError("external general entity %q is not supported for inline expansion", name).WithName(name)
		}
		if containsMarkup(value) && !singleConstructRe.MatchString(value) {
			return "", NewGrammarError("entity %q replacement text contains unsupported markup", name).WithName(name)
		}
		if visited[name] {
			return "", wellFormednessError("recursive entity reference %q", name).WithName(name)
		}
		visited[name] = true
		expanded, err := ex.expand(value, visited)
		delete(visited, name)
		if err != nil {
			return "", err
		}
		out = append(out, []rune(expanded)...)
	}
	return string(out), nil
}

func containsMarkup(s string) bool {
	for _, r := range s {
		if r == '<' {
			return true
		}
	}
	return false
}

func indexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}

// decodeCharRef recognizes &#DDDD; and &#xHHHH; character references. ok
// is false (with no error) when ref isn't a character reference at all,
// so the caller falls through to general-entity lookup.
func decodeCharRef(ref string) (rune, bool, *Error) {
	body := ref[1 : len(ref)-1]
	if len(body) == 0 || body[0] != '#' {
		return 0, false, nil
	}
	digits := body[1:]
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		digits = digits[1:]
		base = 16
	}
	if digits == "" {
		return 0, true, wellFormednessError("malformed character reference %q", ref)
	}
	var value int64
	for _, c := range digits {
		var d int64
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case base == 16 && c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		default:
			return 0, true, wellFormednessError("malformed character reference %q", ref)
		}
		value = value*int64(base) + d
		if value > 0x10FFFF {
			return 0, true, wellFormednessError("character reference %q out of range", ref)
		}
	}
	return rune(value), true, nil
}
