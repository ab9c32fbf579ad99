package rng

import xmlcore "github.com/arborxml/xmlcore/xml"

// Kind tags which RelaxNG pattern shape a Pattern node represents. Names
// follow the RelaxNG spec's own simplified pattern grammar rather than
// particle/'s DTD/XSD-flavored Kind, since RelaxNG's interleave and
// choice-of-empty constructs don't map onto that tree directly.
type Kind int

const (
	KindEmpty Kind = iota
	KindNotAllowed
	KindText
	KindElement
	KindAttribute
	KindGroup
	KindInterleave
	KindChoice
	KindOneOrMore
)

// Pattern is one node of a RelaxNG pattern tree, built by simplifying a
// compiled schema down to the restricted grammar Brzozowski derivatives
// operate over (Empty, NotAllowed, Text, Element, Attribute, Group,
// Interleave, Choice, OneOrMore -- Optional/ZeroOrMore/List are expressed
// via Choice/OneOrMore combinations the way the RelaxNG spec's own
// simplification step reduces them).
type Pattern struct {
	Kind    Kind
	Name    xmlcore.Name // KindElement / KindAttribute
	Content *Pattern     // KindElement: the element's content pattern
	Left    *Pattern     // KindGroup/KindInterleave/KindChoice/KindOneOrMore
	Right   *Pattern     // KindGroup/KindInterleave/KindChoice
}

// Empty matches the empty sequence.
func Empty() *Pattern { return &Pattern{Kind: KindEmpty} }

// NotAllowed matches nothing; it is the derivative engine's "stuck" state.
func NotAllowed() *Pattern { return &Pattern{Kind: KindNotAllowed} }

// TextPattern matches any run of character data, any number of times.
func TextPattern() *Pattern { return &Pattern{Kind: KindText} }

// ElementPat constructs a pattern matching one element named name whose
// children/text must derive content to nullable.
func ElementPat(name xmlcore.Name, content *Pattern) *Pattern {
	return &Pattern{Kind: KindElement, Name: name, Content: content}
}

// Group constructs an ordered concatenation: a followed by b.
func Group(a, b *Pattern) *Pattern {
	return &Pattern{Kind: KindGroup, Left: a, Right: b}
}

// Interleave constructs an unordered concatenation: a and b, in either
// order, interspersed (RelaxNG <interleave>).
func Interleave(a, b *Pattern) *Pattern {
	return &Pattern{Kind: KindInterleave, Left: a, Right: b}
}

// Choice constructs an alternation: a or b.
func Choice(a, b *Pattern) *Pattern {
	return &Pattern{Kind: KindChoice, Left: a, Right: b}
}

// OneOrMore constructs a repetition of p, one or more times. ZeroOrMore
// is Choice(Empty(), OneOrMore(p)); Optional is Choice(Empty(), p).
func OneOrMore(p *Pattern) *Pattern {
	return &Pattern{Kind: KindOneOrMore, Left: p}
}

// ZeroOrMore constructs a repetition of p, zero or more times.
func ZeroOrMore(p *Pattern) *Pattern {
	return Choice(Empty(), OneOrMore(p))
}

// Optional constructs a pattern matching p zero or one times.
func Optional(p *Pattern) *Pattern {
	return Choice(Empty(), p)
}
