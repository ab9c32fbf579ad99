package particle

import xmlcore "github.com/arborxml/xmlcore/xml"

// SubstitutionResolver answers "can actual stand in for head" (spec.md
// §4.E): an ElementRef particle naming head also accepts any element
// that head's substitution group reports as a member. A nil resolver
// passed to Validate means no substitution is possible at all (DTD
// content models, and XSD/RNG schemas that declare no substitution
// groups).
type SubstitutionResolver interface {
	CanSubstitute(actual, head xmlcore.Name) bool
}

// GroupResolver is the straightforward map-backed SubstitutionResolver:
// head -> members. xsdschema populates one of these per schema from its
// xsd:element/@substitutionGroup declarations.
type GroupResolver struct {
	groups map[xmlcore.Name]map[xmlcore.Name]bool
}

func NewGroupResolver() *GroupResolver {
	return &GroupResolver{groups: make(map[xmlcore.Name]map[xmlcore.Name]bool)}
}

// Declare records that member substitutes for head, transitively
// following any chain already declared through head (a member can itself
// be the head of a further substitution group).
func (g *GroupResolver) Declare(head, member xmlcore.Name) {
	added := []xmlcore.Name{member}
	for m := range g.groups[member] {
		added = append(added, m)
	}
	if g.groups[head] == nil {
		g.groups[head] = make(map[xmlcore.Name]bool)
	}
	for _, m := range added {
		g.groups[head][m] = true
	}
	for h, members := range g.groups {
		if members[head] {
			for _, m := range added {
				g.groups[h][m] = true
			}
		}
	}
}

func (g *GroupResolver) CanSubstitute(actual, head xmlcore.Name) bool {
	return g.groups[head][actual]
}

var _ SubstitutionResolver = (*GroupResolver)(nil)
