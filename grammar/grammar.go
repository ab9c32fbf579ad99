// Package grammar implements the Grammar abstraction of spec.md §4.D: a
// single interface, backed by one of several concrete schema languages
// (DTD, XSD, RelaxNG) or a composite of several, rather than a class
// hierarchy. Concrete backends live in sibling packages (dtd, xsdschema,
// rng) and are wired together here through Kind and Composite.
package grammar

import (
	xmlcore "github.com/arborxml/xmlcore/xml"
)

// Kind tags which concrete schema language backs a Grammar value.
type Kind int

const (
	KindDTD Kind = iota
	KindXSD
	KindRNG
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindDTD:
		return "dtd"
	case KindXSD:
		return "xsd"
	case KindRNG:
		return "rng"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Backend is what a concrete schema-language package (dtd, xsdschema,
// rng) must implement. It is a strict superset of xmlcore.Grammar: the
// parser only ever needs xmlcore.Grammar, but Composite needs to know
// which Kind each member backend is.
type Backend interface {
	xmlcore.Grammar
	Kind() Kind
}

