package xml

import "fmt"

// idTable accumulates ID and IDREF(S) sightings during a validating parse
// and resolves them at EndDocument (spec.md §4.B "ID/IDREF tracking").
// Duplicate IDs are reported as soon as the second one is seen; dangling
// IDREFs can only be known once the whole document has been scanned, so
// they're reported from finalize.
type idTable struct {
	defined map[string]bool
	refs    map[string][]Locator // idref value -> where it was seen
}

func newIDTable() *idTable {
	return &idTable{
		defined: make(map[string]bool),
		refs:    make(map[string][]Locator),
	}
}

// declareID records an ID attribute value, returning an error if it is a
// duplicate.
func (t *idTable) declareID(value string, loc Locator) *Error {
	if t.defined[value] {
		return validationError("duplicate ID value %q", value).WithPos(loc.Line(), loc.Column())
	}
	t.defined[value] = true
	return nil
}

// declareRef records a single IDREF value for later resolution.
func (t *idTable) declareRef(value string, loc Locator) {
	t.refs[value] = append(t.refs[value], snapshotLocator(loc))
}

func snapshotLocator(loc Locator) Locator {
	return &runtimeLocator{
		line: loc.Line(), col: loc.Column(),
		publicID: loc.PublicID(), sysID: loc.SystemID(),
	}
}

// finalize reports every IDREF value with no matching ID (spec.md's
// "finalized at endDocument"). Order is deterministic by first-seen
// reference, not map iteration.
func (t *idTable) finalize(order []string) []*Error {
	var errs []*Error
	for _, value := range order {
		if t.defined[value] {
			continue
		}
		locs := t.refs[value]
		if len(locs) == 0 {
			continue
		}
		loc := locs[0]
		errs = append(errs, validationError("IDREF %q does not match any ID", value).WithPos(loc.Line(), loc.Column()))
	}
	return errs
}

func (t *idTable) String() string {
	return fmt.Sprintf("idTable{%d ids, %d distinct refs}", len(t.defined), len(t.refs))
}
