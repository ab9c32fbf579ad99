package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ResolveBySystemID(t *testing.T) {
	c := &Catalog{Entries: []Entry{
		{Kind: EntrySystem, SystemID: "urn:book", URI: "file:///book.dtd"},
	}}
	uri, ok := c.Resolve("", "urn:book", map[string]bool{})
	require.True(t, ok)
	assert.Equal(t, "file:///book.dtd", uri)
}

func TestCatalog_ResolveByPublicID(t *testing.T) {
	c := &Catalog{Entries: []Entry{
		{Kind: EntryPublic, PublicID: "-//Example//DTD Book//EN", URI: "file:///book.dtd"},
	}}
	uri, ok := c.Resolve("-//Example//DTD Book//EN", "urn:unrelated", map[string]bool{})
	require.True(t, ok)
	assert.Equal(t, "file:///book.dtd", uri)
}

func TestCatalog_SystemMatchTakesPriorityOverPublic(t *testing.T) {
	c := &Catalog{Entries: []Entry{
		{Kind: EntryPublic, PublicID: "pub", URI: "from-public"},
		{Kind: EntrySystem, SystemID: "sys", URI: "from-system"},
	}}
	uri, ok := c.Resolve("pub", "sys", map[string]bool{})
	require.True(t, ok)
	assert.Equal(t, "from-system", uri)
}

func TestCatalog_RewriteSystem_LongestPrefixWins(t *testing.T) {
	c := &Catalog{Entries: []Entry{
		{Kind: EntryRewriteSystem, StartsWith: "http://example.com/", URI: "file:///short/"},
		{Kind: EntryRewriteSystem, StartsWith: "http://example.com/dtds/", URI: "file:///long/"},
	}}
	uri, ok := c.Resolve("", "http://example.com/dtds/book.dtd", map[string]bool{})
	require.True(t, ok)
	assert.Equal(t, "file:///long/book.dtd", uri)
}

func TestCatalog_URIEntry_MatchesNameReturnsTarget(t *testing.T) {
	c := &Catalog{Entries: []Entry{
		{Kind: EntryURI, SystemID: "urn:thing", URI: "file:///thing.xsd"},
	}}
	uri, ok := c.Resolve("", "urn:thing", map[string]bool{})
	require.True(t, ok)
	assert.Equal(t, "file:///thing.xsd", uri)
}

func TestCatalog_NoMatchReturnsFalse(t *testing.T) {
	c := &Catalog{}
	_, ok := c.Resolve("", "urn:nothing", map[string]bool{})
	assert.False(t, ok)
}

func TestCatalog_NextCatalogDelegation(t *testing.T) {
	inner := &Catalog{Entries: []Entry{
		{Kind: EntrySystem, SystemID: "urn:book", URI: "file:///book.dtd"},
	}}
	outer := &Catalog{
		Entries: []Entry{{Kind: EntryNextCatalog, SystemID: "other.xml"}},
		Loader: func(systemID string) (*Catalog, error) {
			if systemID == "other.xml" {
				return inner, nil
			}
			return nil, errors.New("not found")
		},
	}
	uri, ok := outer.Resolve("", "urn:book", map[string]bool{})
	require.True(t, ok)
	assert.Equal(t, "file:///book.dtd", uri)
}

func TestCatalog_NextCatalogCycleGuard(t *testing.T) {
	var outer *Catalog
	outer = &Catalog{
		Entries: []Entry{{Kind: EntryNextCatalog, SystemID: "self.xml"}},
		Loader: func(systemID string) (*Catalog, error) {
			return outer, nil
		},
	}
	_, ok := outer.Resolve("", "urn:nowhere", map[string]bool{})
	assert.False(t, ok)
}

func TestCatalog_NoNextCatalogLoaderMeansNoFurtherResolution(t *testing.T) {
	c := &Catalog{Entries: []Entry{{Kind: EntryNextCatalog, SystemID: "other.xml"}}}
	_, ok := c.Resolve("", "urn:book", map[string]bool{})
	assert.False(t, ok)
}

func TestCatalog_AsEntityResolver(t *testing.T) {
	c := &Catalog{Entries: []Entry{
		{Kind: EntrySystem, SystemID: "urn:book", URI: "file:///book.dtd"},
	}}
	r := c.AsEntityResolver()
	uri, ok := r.Resolve("", "urn:book")
	require.True(t, ok)
	assert.Equal(t, "file:///book.dtd", uri)
}
