package xml

import "strings"

// Name is a parsed XML Name production: at most one colon separating a
// prefix from a local part. Names are immutable once constructed.
type Name struct {
	Prefix    string
	Local     string
	URI       string // resolved namespace URI, filled in by the parser
}

// String renders the qualified name the way it appeared in the source,
// prefix:local, or just local when there is no prefix.
func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// ParseName splits a raw Name token on its first colon. A second colon
// makes the name invalid; callers must have already validated qname shape
// via isValidName/isNCName in scanner.go before calling ParseName.
func ParseName(raw string) Name {
	if i := strings.IndexByte(raw, ':'); i > 0 {
		return Name{Prefix: raw[:i], Local: raw[i+1:]}
	}
	return Name{Local: raw}
}

// Attribute is the (name, raw-value, specified?, lexical-default?) tuple
// of spec.md §3. Specified is true when the attribute literally appeared
// in the start tag; LexicalDefault records the DTD/XSD/RNG-declared
// default form of an attribute the parser inserted from its declaration.
type Attribute struct {
	Name            Name
	Value           string
	Specified       bool
	LexicalDefault  string
	HasLexicalDefault bool
}

// normalizeLineEndings implements XML 2.11: \r\n and lone \r become \n.
// This must run before both entity expansion and whitespace collapse
// (DESIGN NOTES §9: "Attribute-value normalization order").
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\r' {
			b.WriteRune('\n')
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// collapseWhitespace implements the non-CDATA attribute-value whitespace
// normalization of spec.md §4.B: tabs/CRs/LFs become spaces, runs of space
// collapse to one, and leading/trailing space is trimmed. CDATA attributes
// skip this step entirely (only line-ending normalization applies to them).
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastWasSpace := false
	for _, r := range s {
		if r == '\t' || r == '\r' || r == '\n' || r == ' ' {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		b.WriteRune(r)
		lastWasSpace = false
	}
	return strings.TrimSpace(b.String())
}

// isCDATAType reports whether attribute-type tag t skips whitespace
// collapse. Only CDATA does; every other declared type -- including
// typed atomic types -- collapses per spec.md §4.B.
func isCDATAType(t AttributeTypeTag) bool {
	return t == AttrCDATA
}

// AttributeTypeTag is the declared attribute datatype of spec.md §3:
// {CDATA|ID|IDREF|IDREFS|ENTITY|ENTITIES|NMTOKEN|NMTOKENS|NOTATION|ENUM|TYPED}.
type AttributeTypeTag int

const (
	AttrCDATA AttributeTypeTag = iota
	AttrID
	AttrIDREF
	AttrIDREFS
	AttrENTITY
	AttrENTITIES
	AttrNMTOKEN
	AttrNMTOKENS
	AttrNOTATION
	AttrENUM
	AttrTyped
)
