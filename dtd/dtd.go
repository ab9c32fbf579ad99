// Package dtd implements the DTD Grammar backend of spec.md §4.D/§6:
// ELEMENT/ATTLIST/ENTITY/NOTATION declarations from a document's internal
// or external subset, compiled down to xmlcore.Grammar and
// particle.Particle.
package dtd

import (
	"github.com/arborxml/xmlcore/grammar"
	"github.com/arborxml/xmlcore/particle"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

// Grammar is a parsed DTD: element content models, attribute-list
// declarations, general/parameter entities, and notations, keyed by
// declared name (DTDs have no namespaces, so keys are local names only).
type Grammar struct {
	Elements  map[string]*particle.Particle
	MixedOnly map[string]bool // true for elements declared with only #PCDATA (no particle needed)
	Attlists  map[string][]grammar.AttributeDeclaration
	Entities  map[string]grammar.EntityDeclaration
	Notations map[string]xmlcore.Notation
}

func New() *Grammar {
	return &Grammar{
		Elements:  make(map[string]*particle.Particle),
		MixedOnly: make(map[string]bool),
		Attlists:  make(map[string][]grammar.AttributeDeclaration),
		Entities:  make(map[string]grammar.EntityDeclaration),
		Notations: make(map[string]xmlcore.Notation),
	}
}

func (g *Grammar) Kind() grammar.Kind { return grammar.KindDTD }

func (g *Grammar) ResolveEntity(name string) (string, bool, bool) {
	e, ok := g.Entities[name]
	if !ok {
		return "", false, false
	}
	return e.Value, e.External, true
}

func (g *Grammar) GetElementAttributes(name xmlcore.Name) ([]xmlcore.AttributeDecl, bool) {
	decls, ok := g.Attlists[name.Local]
	if !ok {
		return nil, false
	}
	out := make([]xmlcore.AttributeDecl, len(decls))
	for i, d := range decls {
		out[i] = d.ToParserDecl()
	}
	return out, true
}

func (g *Grammar) ValidateAttributes(name xmlcore.Name, attrs []xmlcore.Attribute) []*xmlcore.Error {
	decls, ok := g.Attlists[name.Local]
	if !ok {
		return nil
	}
	var errs []*xmlcore.Error
	present := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		present[a.Name.Local] = true
	}
	for _, d := range decls {
		if d.Required && !present[d.Name.Local] {
			errs = append(errs, xmlcore.NewValidationError(
				"required attribute %q missing on element %q", d.Name.Local, name.String()))
		}
	}
	for _, a := range attrs {
		for _, d := range decls {
			if d.Name.Local != a.Name.Local {
				continue
			}
			if d.Fixed && a.Value != d.Default {
				errs = append(errs, xmlcore.NewValidationError(
					"attribute %q must have fixed value %q, got %q", a.Name.Local, d.Default, a.Value))
			}
			if len(d.EnumValues) > 0 && !containsString(d.EnumValues, a.Value) {
				errs = append(errs, xmlcore.NewValidationError(
					"attribute %q value %q is not one of %v", a.Name.Local, a.Value, d.EnumValues))
			}
		}
	}
	return errs
}

func (g *Grammar) ValidateElement(name xmlcore.Name, children []xmlcore.Name, mixedText bool) *xmlcore.Error {
	if g.MixedOnly[name.Local] {
		return nil
	}
	p, ok := g.Elements[name.Local]
	if !ok {
		return nil
	}
	return particle.Validate(p, children, mixedText, nil)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

var _ grammar.Backend = (*Grammar)(nil)
