package domain

import (
	"slices"
	"sort"
)

// Catalog maps category names to their candidate values.
// It is immutable once built and safe for concurrent readers.
type Catalog struct {
	values map[string][]string
	names  []string
}

// NewCatalog copies m, dropping categories without values.
func NewCatalog(m map[string][]string) Catalog {
	c := Catalog{values: make(map[string][]string, len(m))}
	for name, vals := range m {
		if len(vals) == 0 {
			continue
		}
		c.values[name] = slices.Clone(vals)
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c
}

// Categories returns the category names in sorted order.
func (c Catalog) Categories() []string {
	return slices.Clone(c.names)
}

// Values returns a copy of the values for name, or nil if there are none.
func (c Catalog) Values(name string) []string {
	return slices.Clone(c.values[name])
}

// Has reports whether name is a known category.
func (c Catalog) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Len is the number of categories.
func (c Catalog) Len() int { return len(c.names) }

// lookup returns the backing slice without copying; callers must not mutate it.
func (c Catalog) lookup(name string) []string {
	return c.values[name]
}
