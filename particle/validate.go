package particle

import xmlcore "github.com/arborxml/xmlcore/xml"

// Validate checks children -- the child element names seen as an
// element's content, in document order -- against p. mixedText reports
// whether character data was present in that content; when it is set and
// p is not Mixed, Validate rejects the content even if the element names
// match.
func Validate(p *Particle, children []xmlcore.Name, mixedText bool, resolver SubstitutionResolver) *xmlcore.Error {
	ends := matchPositions(p, children, 0, resolver, 0)
	if !ends[len(children)] {
		return xmlcore.NewValidationError("element content does not match its declared content model")
	}
	if mixedText && !allowsMixedText(p) {
		return xmlcore.NewValidationError("character data not allowed in element-only content")
	}
	return nil
}

// allowsMixedText reports whether p was built for a "mixed" content
// declaration (spec.md §4.E); backends set Particle.Mixed on the root
// Sequence/Choice they compile a mixed-content spec down to.
func allowsMixedText(p *Particle) bool {
	return p.Mixed
}

// maxRecursionDepth guards the prefix-search recursion the choice-inside-
// sequence algorithm below performs (spec.md §9 Open Question #3): a
// content model nested deeper than this is almost certainly a cyclic
// group reference a grammar backend failed to catch, not a legitimate
// document.
const maxRecursionDepth = 256

// matchPositions returns the set of indices into children reachable by
// matching p, repeated between p.Min and p.Max times, starting at index
// start. It is the general form of spec.md §9's "try increasing prefix
// lengths" resolution: rather than special-casing Choice nested inside
// Sequence, every particle kind is matched by exploring the full set of
// reachable end positions at each step and threading that set through
// the next step, so a Choice's alternatives are implicitly tried at
// every length a surrounding Sequence could also stop at.
func matchPositions(p *Particle, children []xmlcore.Name, start int, resolver SubstitutionResolver, depth int) map[int]bool {
	if depth > maxRecursionDepth {
		return map[int]bool{}
	}
	results := map[int]bool{}
	current := map[int]bool{start: true}
	if p.Min == 0 {
		results[start] = true
	}
	count := 0
	bound := len(children) + 1
	for iter := 0; iter < bound; iter++ {
		if p.Max != Unbounded && count >= p.Max {
			break
		}
		next := map[int]bool{}
		for pos := range current {
			for np := range matchOnce(p, children, pos, resolver, depth+1) {
				next[np] = true
			}
		}
		if len(next) == 0 {
			break
		}
		progressed := false
		for np := range next {
			if !current[np] {
				progressed = true
				break
			}
		}
		count++
		current = next
		if count >= p.Min {
			for pos := range current {
				results[pos] = true
			}
		}
		if !progressed {
			break
		}
	}
	return results
}

// matchOnce matches exactly one occurrence of p's body (ignoring p's own
// Min/Max, which matchPositions already applies) starting at start.
func matchOnce(p *Particle, children []xmlcore.Name, start int, resolver SubstitutionResolver, depth int) map[int]bool {
	switch p.Kind {
	case KindElementRef:
		if start >= len(children) {
			return map[int]bool{}
		}
		if namesMatch(children[start], p.Element, resolver) {
			return map[int]bool{start + 1: true}
		}
		return map[int]bool{}

	case KindAny:
		if start >= len(children) {
			return map[int]bool{}
		}
		if p.Namespace == "" || children[start].URI == p.Namespace {
			return map[int]bool{start + 1: true}
		}
		return map[int]bool{}

	case KindGroup:
		return matchPositions(p.Children[0], children, start, resolver, depth)

	case KindSequence:
		positions := map[int]bool{start: true}
		for _, child := range p.Children {
			next := map[int]bool{}
			for pos := range positions {
				for np := range matchPositions(child, children, pos, resolver, depth+1) {
					next[np] = true
				}
			}
			positions = next
			if len(positions) == 0 {
				break
			}
		}
		return positions

	case KindChoice:
		out := map[int]bool{}
		for _, child := range p.Children {
			for np := range matchPositions(child, children, start, resolver, depth+1) {
				out[np] = true
			}
		}
		return out

	case KindAll:
		return allPositions(p.Children, children, start, resolver, depth+1)

	default:
		return map[int]bool{}
	}
}

// allPositions implements xs:all: every member of parts matches exactly
// once, in any order, as a contiguous run starting at start.
func allPositions(parts []*Particle, children []xmlcore.Name, start int, resolver SubstitutionResolver, depth int) map[int]bool {
	if len(parts) == 0 {
		return map[int]bool{start: true}
	}
	out := map[int]bool{}
	for i, part := range parts {
		rest := make([]*Particle, 0, len(parts)-1)
		rest = append(rest, parts[:i]...)
		rest = append(rest, parts[i+1:]...)
		for np := range matchPositions(part, children, start, resolver, depth) {
			for end := range allPositions(rest, children, np, resolver, depth) {
				out[end] = true
			}
		}
	}
	return out
}

func namesMatch(actual, want xmlcore.Name, resolver SubstitutionResolver) bool {
	if actual == want {
		return true
	}
	if resolver != nil && resolver.CanSubstitute(actual, want) {
		return true
	}
	return false
}
