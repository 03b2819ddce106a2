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

// Package location provides path types shared across the dependency graph
// analyzer: Location, an existence-checked absolute path, and RelativePath,
// a path expressed relative to some Location.
package location

import (
	"fmt"
	"path/filepath"

	"bennypowers.dev/depgraph/fs"
)

// PathError is returned when a path cannot be turned into a Location or
// RelativePath, mirroring the "path" error kind of the analyzer's error
// taxonomy.
type PathError struct {
	Path string
	Op   string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: cannot %s", e.Path, e.Op)
}

// Location is a filesystem path that has been checked to exist against a
// fs.FileSystem at construction time and reduced to a clean absolute form.
// Two Locations are equal exactly when they name the same clean path; this
// is a lexical rather than device/inode equality, so hard-linked or
// symlinked duplicates are not collapsed into a single Location (see
// DESIGN.md for the tradeoff).
type Location struct {
	path string
}

// New validates that path exists on filesystem and returns the Location for
// its cleaned absolute form. The filesystem is consulted rather than the
// real OS so Location is fully testable against an in-memory fs.FileSystem.
func New(filesystem fs.FileSystem, path string) (Location, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Location{}, &PathError{Path: path, Op: "resolve"}
	}
	clean := filepath.Clean(abs)
	if !filesystem.Exists(clean) {
		return Location{}, &PathError{Path: path, Op: "resolve"}
	}
	return Location{path: clean}, nil
}

// NewUnchecked builds a Location from an already-clean absolute path without
// probing the filesystem. Callers that have just stat'ed the path (and so
// know it exists) use this to avoid a redundant Exists call.
func NewUnchecked(path string) Location {
	return Location{path: filepath.Clean(path)}
}

// String returns the location's absolute path.
func (l Location) String() string {
	return l.path
}

// IsZero reports whether l is the zero Location.
func (l Location) IsZero() bool {
	return l.path == ""
}

// Dir returns the Location of l's parent directory.
func (l Location) Dir() Location {
	return Location{path: filepath.Dir(l.path)}
}

// Join returns the Location obtained by joining additional path elements
// onto l without checking existence.
func (l Location) Join(elem ...string) Location {
	parts := append([]string{l.path}, elem...)
	return Location{path: filepath.Clean(filepath.Join(parts...))}
}

// MakeRelativeTo returns the RelativePath of l expressed relative to base.
func (l Location) MakeRelativeTo(base Location) (RelativePath, error) {
	rel, err := filepath.Rel(base.path, l.path)
	if err != nil {
		return RelativePath{}, &PathError{Path: l.path, Op: "relativize"}
	}
	return RelativePath{path: rel}, nil
}

// RelativePath is a path understood to be relative to some Location, kept
// as a distinct comparable type so callers cannot accidentally mix absolute
// and relative paths when building map keys or set members.
type RelativePath struct {
	path string
}

// NewRelativePath validates that root joined with path exists on filesystem
// and returns the resulting RelativePath.
func NewRelativePath(filesystem fs.FileSystem, root Location, path string) (RelativePath, error) {
	if !filesystem.Exists(root.Join(path).path) {
		return RelativePath{}, &PathError{Path: path, Op: "relativize"}
	}
	return RelativePath{path: filepath.Clean(path)}, nil
}

// String returns the path text of p.
func (p RelativePath) String() string {
	return p.path
}

// ResolveFrom returns the Location obtained by joining p onto root.
func (p RelativePath) ResolveFrom(root Location) Location {
	return root.Join(p.path)
}
