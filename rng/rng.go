// Package rng implements the RelaxNG Grammar backend of spec.md §4.H: a
// pattern tree (pattern.go) checked by Brzozowski derivatives
// (derivative.go) rather than the NFA-style position-set matcher
// particle/ uses for DTD/XSD, since RelaxNG's interleave (<interleave>)
// pattern does not reduce cleanly to a sequence of element positions the
// way DTD/XSD content models do.
package rng

import (
	"github.com/arborxml/xmlcore/grammar"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

// AttributePattern is one RelaxNG <attribute> declaration attached to an
// ElementPattern.
type AttributePattern struct {
	Name       xmlcore.Name
	Facets     *grammar.SimpleTypeFacets
	Required   bool
	Default    string
	HasDefault bool
}

// Grammar is a compiled RelaxNG schema: the element patterns reachable
// from the grammar's start pattern, keyed by qualified element name so
// ValidateElement/ValidateAttributes can look one up directly rather
// than re-walking the whole pattern tree per call.
type Grammar struct {
	Start    *Pattern
	Elements map[xmlcore.Name]*ElementPattern
}

// ElementPattern is the compiled shape of one <element> pattern: its
// attribute declarations plus the content Pattern its children and text
// must derive to nullable against.
type ElementPattern struct {
	Name    xmlcore.Name
	Attrs   []AttributePattern
	Content *Pattern
}

func New() *Grammar {
	return &Grammar{Elements: make(map[xmlcore.Name]*ElementPattern)}
}

func (g *Grammar) Kind() grammar.Kind { return grammar.KindRNG }

// ResolveEntity: RelaxNG schemas declare no general entities.
func (g *Grammar) ResolveEntity(name string) (string, bool, bool) {
	return "", false, false
}

func (g *Grammar) GetElementAttributes(name xmlcore.Name) ([]xmlcore.AttributeDecl, bool) {
	e, ok := g.Elements[name]
	if !ok || len(e.Attrs) == 0 {
		return nil, false
	}
	out := make([]xmlcore.AttributeDecl, len(e.Attrs))
	for i, a := range e.Attrs {
		out[i] = xmlcore.AttributeDecl{
			Name: a.Name, Type: xmlcore.AttrTyped, Required: a.Required,
			Default: a.Default, HasDefault: a.HasDefault,
		}
	}
	return out, true
}

func (g *Grammar) ValidateAttributes(name xmlcore.Name, attrs []xmlcore.Attribute) []*xmlcore.Error {
	e, ok := g.Elements[name]
	if !ok {
		return nil
	}
	present := make(map[xmlcore.Name]xmlcore.Attribute, len(attrs))
	for _, a := range attrs {
		present[a.Name] = a
	}
	var errs []*xmlcore.Error
	for _, decl := range e.Attrs {
		a, has := present[decl.Name]
		if !has {
			if decl.Required {
				errs = append(errs, xmlcore.NewValidationError(
					"required attribute %q missing on element %q", decl.Name.String(), name.String()))
			}
			continue
		}
		if decl.Facets != nil {
			for _, msg := range decl.Facets.Check(a.Value) {
				errs = append(errs, xmlcore.NewValidationError("attribute %q: %s", decl.Name.String(), msg))
			}
		}
	}
	return errs
}

// ValidateElement derives Content against the child sequence (and any
// mixed text run) using the Brzozowski derivative walk in derivative.go,
// rejecting when the result is not nullable.
func (g *Grammar) ValidateElement(name xmlcore.Name, children []xmlcore.Name, mixedText bool) *xmlcore.Error {
	e, ok := g.Elements[name]
	if !ok || e.Content == nil {
		return nil
	}
	p := e.Content
	for _, c := range children {
		p = DerivativeElement(p, c)
		if p == nil {
			return xmlcore.NewValidationError("element %q: child %q not permitted here", name.String(), c.String())
		}
	}
	if mixedText {
		p = DerivativeText(p)
		if p == nil {
			return xmlcore.NewValidationError("element %q: text not permitted here", name.String())
		}
	}
	if !Nullable(p) {
		return xmlcore.NewValidationError("element %q: incomplete content", name.String())
	}
	return nil
}

var _ grammar.Backend = (*Grammar)(nil)
