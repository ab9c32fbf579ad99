// Package particle implements the content-model/particle validation
// engine of spec.md §4.E: a tree of Sequence/Choice/All/Any/ElementRef/
// Group nodes with min/max occurrence bounds, shared by the DTD, XSD and
// RelaxNG backends so each only has to compile its own grammar's content
// spec down to this one representation once.
package particle

import xmlcore "github.com/arborxml/xmlcore/xml"

// Unbounded is the explicit sentinel for an unbounded maxOccurs, chosen
// deliberately over comparing against a magic integer like -1 or
// math.MaxInt (spec.md DESIGN NOTES §9): every occurrence check compares
// against this named constant, so a reader never has to remember what
// "-1" means here.
const Unbounded = -1

// Kind tags which shape of particle a Particle node is.
type Kind int

const (
	KindElementRef Kind = iota
	KindSequence
	KindChoice
	KindAll
	KindAny
	KindGroup
)

// Particle is one node of a content-model tree. Which fields are
// meaningful depends on Kind: KindElementRef uses Element; KindSequence/
// KindChoice/KindAll/KindGroup use Children; KindAny uses Namespace (""
// means ##any).
type Particle struct {
	Kind      Kind
	Element   xmlcore.Name // KindElementRef
	Namespace string       // KindAny: "" = ##any, else a specific namespace URI
	Children  []*Particle
	Min       int
	Max       int  // Unbounded for no upper bound
	Mixed     bool // true on a root Sequence/Choice built for a "mixed" content declaration
}

// ElementRef constructs a KindElementRef particle matching exactly one
// occurrence of name by default; wrap in Occurs to change its bounds.
func ElementRef(name xmlcore.Name) *Particle {
	return &Particle{Kind: KindElementRef, Element: name, Min: 1, Max: 1}
}

// Sequence constructs an ordered group: each child particle must match,
// in order.
func Sequence(children ...*Particle) *Particle {
	return &Particle{Kind: KindSequence, Children: children, Min: 1, Max: 1}
}

// Choice constructs an alternation: exactly one child particle matches.
func Choice(children ...*Particle) *Particle {
	return &Particle{Kind: KindChoice, Children: children, Min: 1, Max: 1}
}

// All constructs an unordered group where every child matches exactly
// once, in any order (XSD xs:all).
func All(children ...*Particle) *Particle {
	return &Particle{Kind: KindAll, Children: children, Min: 1, Max: 1}
}

// Any constructs a wildcard particle (XSD xs:any / RNG <anyName>),
// matching one element in namespace ns ("" meaning ##any).
func Any(ns string) *Particle {
	return &Particle{Kind: KindAny, Namespace: ns, Min: 1, Max: 1}
}

// Group wraps a single child particle, used by backends that need a
// named/referenceable content-model fragment distinct from an anonymous
// Sequence/Choice (e.g. DTD parameter entities standing for a content
// spec, XSD named group refs).
func Group(child *Particle) *Particle {
	return &Particle{Kind: KindGroup, Children: []*Particle{child}, Min: 1, Max: 1}
}

// Occurs returns a copy of p with its occurrence bounds overridden.
func (p *Particle) Occurs(min, max int) *Particle {
	cp := *p
	cp.Min = min
	cp.Max = max
	return &cp
}
