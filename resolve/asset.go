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

// Asset is the sealed union a resolver produces for one specifier: a
// vendored package, a first-party module awaiting further traversal, a
// non-code file, or an unresolved specifier. Exactly one of the four
// concrete types below satisfies Asset for any given value.
type Asset interface {
	isAsset()
	// Location returns the resolved file location, or false for an
	// UnresolvedAsset, which carries no location at all.
	Location() (location.Location, bool)
}

// NodePackageAsset is a dependency satisfied by a vendored package.
// PackageDirectory is the directory containing the package descriptor;
// TargetFile is the actual file being imported, which can differ from the
// package's main file when the importer targets a subpath.
type NodePackageAsset struct {
	PackageDirectory location.Location
	TargetFile       location.Location
}

func (NodePackageAsset) isAsset() {}

// Location implements Asset.
func (a NodePackageAsset) Location() (location.Location, bool) { return a.TargetFile, true }

// ModuleAsset is a first-party source file that should be traversed for
// its own dependencies.
type ModuleAsset struct {
	Location_ location.Location
}

func (ModuleAsset) isAsset() {}

// Location implements Asset.
func (a ModuleAsset) Location() (location.Location, bool) { return a.Location_, true }

// FileAsset is a non-code file (image, stylesheet, binary) — terminal,
// never traversed further. This is the Go spelling of the spec's
// `Asset(Location)` variant; it is renamed here to avoid colliding with
// the Asset interface name.
type FileAsset struct {
	Location_ location.Location
}

func (FileAsset) isAsset() {}

// Location implements Asset.
func (a FileAsset) Location() (location.Location, bool) { return a.Location_, true }

// UnresolvedAsset means resolution failed; it retains the original literal
// specifier for diagnostics.
type UnresolvedAsset struct {
	Specifier string
}

func (UnresolvedAsset) isAsset() {}

// Location implements Asset.
func (UnresolvedAsset) Location() (location.Location, bool) { return location.Location{}, false }

// DependencyKind tags the import flavor that introduced a Dependency. Both
// static `import` and `export ... from` map to DependencyImport — the
// flavor distinguishes syntax, not resolution semantics.
type DependencyKind int

const (
	// DependencyRequire is a CommonJS require() call.
	DependencyRequire DependencyKind = iota
	// DependencyImport covers static import and export-from statements.
	DependencyImport
	// DependencyAsyncImport is a dynamic import() call.
	DependencyAsyncImport
)

func (k DependencyKind) String() string {
	switch k {
	case DependencyRequire:
		return "Require"
	case DependencyImport:
		return "Import"
	case DependencyAsyncImport:
		return "AsyncImport"
	default:
		return "Unknown"
	}
}

// Dependency pairs a resolved Asset with the import flavor that introduced
// it. The flavor is preserved for diagnostics but never affects resolution
// or traversal.
type Dependency struct {
	Kind  DependencyKind
	Asset Asset
}
