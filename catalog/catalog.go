// Package catalog implements the OASIS XML Catalogs resolver of spec.md
// §4.C: PUBLIC/SYSTEM/URI entries, prefix-rewrite entries, and
// nextCatalog delegation with cycle protection.
package catalog

import xmlcore "github.com/arborxml/xmlcore/xml"

// EntryKind tags which of a Catalog's entry tables an Entry belongs to.
type EntryKind int

const (
	EntryPublic EntryKind = iota
	EntrySystem
	EntryURI
	EntryRewriteSystem
	EntryRewriteURI
	EntryNextCatalog
)

// Entry is one <public>/<system>/<uri>/<rewriteSystem>/<rewriteURI>/
// <nextCatalog> element of a catalog file.
type Entry struct {
	Kind       EntryKind
	PublicID   string // EntryPublic
	SystemID   string // EntrySystem, EntryNextCatalog (as a file path), EntryURI (the name= match key)
	URI        string // EntryURI target, or the replacement for a rewrite entry
	StartsWith string // EntryRewriteSystem/EntryRewriteURI prefix
}

// Catalog is one parsed catalog file: an ordered entry list plus a
// loader so nextCatalog can fetch and parse further catalogs lazily.
type Catalog struct {
	Entries []Entry
	Loader  func(systemID string) (*Catalog, error)
}

// Resolve looks up (publicID, systemID) the way an OASIS catalog
// resolver does: exact system match first, then exact public match, then
// the longest-prefix rewrite entries, falling through to nextCatalog
// entries in order. visited guards nextCatalog cycles (spec.md §4.C);
// callers of Resolve pass a fresh, empty visited set.
func (c *Catalog) Resolve(publicID, systemID string, visited map[string]bool) (string, bool) {
	for _, e := range c.Entries {
		if e.Kind == EntrySystem && e.SystemID == systemID {
			return e.URI, true
		}
	}
	if publicID != "" {
		for _, e := range c.Entries {
			if e.Kind == EntryPublic && e.PublicID == publicID {
				return e.URI, true
			}
		}
	}
	if systemID != "" {
		if rewritten, ok := c.longestPrefixRewrite(systemID); ok {
			return rewritten, true
		}
	}
	for _, e := range c.Entries {
		if e.Kind == EntryURI && e.SystemID == systemID {
			return e.URI, true
		}
	}
	return c.resolveViaNextCatalog(publicID, systemID, visited)
}

func (c *Catalog) longestPrefixRewrite(systemID string) (string, bool) {
	bestLen := -1
	best := ""
	found := false
	for _, e := range c.Entries {
		if e.Kind != EntryRewriteSystem && e.Kind != EntryRewriteURI {
			continue
		}
		if !hasPrefix(systemID, e.StartsWith) {
			continue
		}
		if len(e.StartsWith) > bestLen {
			bestLen = len(e.StartsWith)
			best = e.URI + systemID[len(e.StartsWith):]
			found = true
		}
	}
	return best, found
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func (c *Catalog) resolveViaNextCatalog(publicID, systemID string, visited map[string]bool) (string, bool) {
	if c.Loader == nil {
		return "", false
	}
	for _, e := range c.Entries {
		if e.Kind != EntryNextCatalog {
			continue
		}
		if visited[e.SystemID] {
			continue
		}
		visited[e.SystemID] = true
		next, err := c.Loader(e.SystemID)
		if err != nil {
			continue
		}
		if uri, ok := next.Resolve(publicID, systemID, visited); ok {
			return uri, ok
		}
	}
	return "", false
}

// xmlcoreResolver adapts Catalog to xml.EntityResolver, the minimal
// interface xml/config.go's WithCatalog option accepts.
type xmlcoreResolver struct{ c *Catalog }

func (r xmlcoreResolver) Resolve(publicID, systemID string) (string, bool) {
	return r.c.Resolve(publicID, systemID, map[string]bool{})
}

// AsEntityResolver adapts c to xmlcore.EntityResolver for use with
// xmlcore.WithCatalog.
func (c *Catalog) AsEntityResolver() xmlcore.EntityResolver {
	return xmlcoreResolver{c: c}
}
