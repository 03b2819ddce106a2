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
package resolve

import "bennypowers.dev/depgraph/location"

// ModuleKind distinguishes a package-sourced module from a first-party
// source file.
type ModuleKind int

const (
	// NormalModule is produced by parsing a first-party source file.
	NormalModule ModuleKind = iota
	// NodeModule is produced from a package descriptor.
	NodeModule
)

func (k ModuleKind) String() string {
	if k == NodeModule {
		return "NodeModule"
	}
	return "NormalModule"
}

// Module is one entry of the dependency cache: a location, its kind, and
// the ordered dependencies discovered there. Equality and hashing are by
// Location alone — two Modules at the same Location are the same module
// regardless of how their dependency lists were computed.
type Module struct {
	Location     location.Location
	Kind         ModuleKind
	Dependencies []Dependency
}
