// Package xsdschema implements the XML Schema (XSD) Grammar backend of
// spec.md §4.D/§4.G: global element/attribute/type declarations compiled
// to xmlcore.Grammar and particle.Particle, with import/include/redefine
// resolution (walk.go) and built-in simple types (defaults.go).
package xsdschema

import (
	"github.com/arborxml/xmlcore/grammar"
	"github.com/arborxml/xmlcore/particle"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

// XSDNamespace is the XML Schema namespace URI every xs:* construct this
// package recognizes must resolve to.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema"

// ElementDecl is one named xs:element declaration, global or local.
type ElementDecl struct {
	Name             xmlcore.Name
	TypeName         string
	Model            *particle.Particle
	Attrs            []grammar.AttributeDeclaration
	Abstract         bool
	SubstitutionHead *xmlcore.Name
}

// Grammar is a parsed (and import/include-closed) XSD schema.
type Grammar struct {
	TargetNamespace string
	Elements        map[xmlcore.Name]*ElementDecl
	SimpleTypes     map[string]*grammar.SimpleTypeFacets
	Substitution    *particle.GroupResolver
}

func New() *Grammar {
	return &Grammar{
		Elements:     make(map[xmlcore.Name]*ElementDecl),
		SimpleTypes:  make(map[string]*grammar.SimpleTypeFacets),
		Substitution: particle.NewGroupResolver(),
	}
}

func (g *Grammar) Kind() grammar.Kind { return grammar.KindXSD }

// ResolveEntity: XSD declares no general entities of its own; a document
// validated against a bare XSDGrammar relies on the predefined five plus
// whatever a sibling DTD contributes through grammar.Composite.
func (g *Grammar) ResolveEntity(name string) (string, bool, bool) {
	return "", false, false
}

func (g *Grammar) GetElementAttributes(name xmlcore.Name) ([]xmlcore.AttributeDecl, bool) {
	e, ok := g.Elements[name]
	if !ok || len(e.Attrs) == 0 {
		return nil, false
	}
	out := make([]xmlcore.AttributeDecl, len(e.Attrs))
	for i, d := range e.Attrs {
		out[i] = d.ToParserDecl()
	}
	return out, true
}

func (g *Grammar) ValidateAttributes(name xmlcore.Name, attrs []xmlcore.Attribute) []*xmlcore.Error {
	e, ok := g.Elements[name]
	if !ok {
		return nil
	}
	var errs []*xmlcore.Error
	present := make(map[xmlcore.Name]xmlcore.Attribute, len(attrs))
	for _, a := range attrs {
		present[a.Name] = a
	}
	for _, d := range e.Attrs {
		a, has := present[d.Name]
		if !has {
			if d.Required {
				errs = append(errs, xmlcore.NewValidationError(
					"required attribute %q missing on element %q", d.Name.String(), name.String()))
			}
			continue
		}
		if d.Fixed && a.Value != d.Default {
			errs = append(errs, xmlcore.NewValidationError(
				"attribute %q must have fixed value %q, got %q", d.Name.String(), d.Default, a.Value))
		}
		if d.Facets != nil {
			for _, msg := range d.Facets.Check(a.Value) {
				errs = append(errs, xmlcore.NewValidationError("attribute %q: %s", d.Name.String(), msg))
			}
		}
	}
	return errs
}

func (g *Grammar) ValidateElement(name xmlcore.Name, children []xmlcore.Name, mixedText bool) *xmlcore.Error {
	e, ok := g.Elements[name]
	if !ok || e.Model == nil {
		return nil
	}
	return particle.Validate(e.Model, children, mixedText, g.Substitution)
}

var _ grammar.Backend = (*Grammar)(nil)
