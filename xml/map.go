package xml

import (
	"fmt"
	"sort"
)

// OrderedMap is a string-keyed map that preserves insertion order. It backs
// the default DOM builder's attribute lists, where document order is
// observable.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewMap creates an empty OrderedMap.
func NewMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Put inserts or overwrites key, appending it to the key order on first
// insertion only.
func (om *OrderedMap) Put(key string, value any) {
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

// Get returns the value for key, or nil if absent.
func (om *OrderedMap) Get(key string) any {
	return om.values[key]
}

// Has reports whether key is present.
func (om *OrderedMap) Has(key string) bool {
	_, exists := om.values[key]
	return exists
}

// Remove deletes key, keeping key order consistent for the rest.
func (om *OrderedMap) Remove(key string) {
	if _, exists := om.values[key]; !exists {
		return
	}
	delete(om.values, key)
	for i, k := range om.keys {
		if k == key {
			om.keys = append(om.keys[:i], om.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (om *OrderedMap) Len() int {
	return len(om.keys)
}

// Keys returns the keys in insertion order.
func (om *OrderedMap) Keys() []string {
	result := make([]string, len(om.keys))
	copy(result, om.keys)
	return result
}

// SortKeys reorders the keys alphabetically; Keys and ForEach report the
// sorted order afterwards.
func (om *OrderedMap) SortKeys() {
	sort.Strings(om.keys)
}

// ForEach iterates key/value pairs in order, stopping early if fn returns
// false.
func (om *OrderedMap) ForEach(fn func(key string, value any) bool) {
	for _, k := range om.keys {
		if !fn(k, om.values[k]) {
			break
		}
	}
}

// String is a debug helper, not a serializer: the round-trip encoder in
// encoder.go is the supported way to turn a document back into XML text.
func (om *OrderedMap) String() string {
	s := "{"
	for i, k := range om.keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %v", k, om.values[k])
	}
	return s + "}"
}
