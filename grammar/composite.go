package grammar

import xmlcore "github.com/arborxml/xmlcore/xml"

// Composite implements xmlcore.Grammar by delegating to an ordered list
// of Backends -- spec.md §4.D's "a document governed by more than one
// grammar" case (e.g. a DTD's entity declarations feeding an XSD's
// element validation). Entity/attribute lookups return the first
// backend's answer; ValidateAttributes/ValidateElement run every backend
// and concatenate violations (or short-circuit on the first fatal one).
type Composite struct {
	Members []Backend
}

func NewComposite(members ...Backend) *Composite {
	return &Composite{Members: members}
}

func (c *Composite) ResolveEntity(name string) (string, bool, bool) {
	for _, m := range c.Members {
		if v, ext, ok := m.ResolveEntity(name); ok {
			return v, ext, ok
		}
	}
	return "", false, false
}

func (c *Composite) GetElementAttributes(name xmlcore.Name) ([]xmlcore.AttributeDecl, bool) {
	for _, m := range c.Members {
		if decls, ok := m.GetElementAttributes(name); ok {
			return decls, ok
		}
	}
	return nil, false
}

func (c *Composite) ValidateAttributes(name xmlcore.Name, attrs []xmlcore.Attribute) []*xmlcore.Error {
	var errs []*xmlcore.Error
	for _, m := range c.Members {
		errs = append(errs, m.ValidateAttributes(name, attrs)...)
	}
	return errs
}

func (c *Composite) ValidateElement(name xmlcore.Name, children []xmlcore.Name, mixedText bool) *xmlcore.Error {
	for _, m := range c.Members {
		if err := m.ValidateElement(name, children, mixedText); err != nil {
			return err
		}
	}
	return nil
}

var _ xmlcore.Grammar = (*Composite)(nil)
