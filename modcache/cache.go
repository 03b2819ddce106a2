/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package modcache builds the dependency cache: a Location-keyed map of
// every Module reachable, depth-first, from a set of entry points. Cycles
// are broken by cache membership alone; there is no separate visited set.
package modcache

import (
	"sort"

	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/resolve"
)

// Cache is the Location -> Module map produced by a Builder. Its zero value
// is not usable; construct one with New.
type Cache struct {
	entries map[location.Location]*resolve.Module
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[location.Location]*resolve.Module)}
}

// Get returns the module cached at loc, if any.
func (c *Cache) Get(loc location.Location) (*resolve.Module, bool) {
	mod, ok := c.entries[loc]
	return mod, ok
}

// Has reports whether loc is already cached.
func (c *Cache) Has(loc location.Location) bool {
	_, ok := c.entries[loc]
	return ok
}

// Set inserts or overwrites the module cached at loc.
func (c *Cache) Set(loc location.Location, mod *resolve.Module) {
	c.entries[loc] = mod
}

// Len returns the number of cached modules.
func (c *Cache) Len() int { return len(c.entries) }

// Locations returns every cached Location in a stable, sorted order.
// Iterating a Go map directly would make cache consumers non-deterministic
// across runs; callers that need to walk the whole cache should use this
// instead of ranging over an exposed map.
func (c *Cache) Locations() []location.Location {
	locs := make([]location.Location, 0, len(c.entries))
	for loc := range c.entries {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].String() < locs[j].String() })
	return locs
}
