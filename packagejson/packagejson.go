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
// Package packagejson parses the subset of package.json fields the resolver
// consults: the package's nominal entry file and its declared dependencies.
package packagejson

import (
	"bytes"
	"encoding/json"
	"strings"

	"bennypowers.dev/depgraph/fs"
)

// PackageJSON represents the subset of package.json relevant to resolving
// a package's main module and, when recursive resolution is enabled, its
// declared dependencies.
type PackageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Main    string `json:"main,omitempty"`
	// Module is the ES module entry point, preferred over Main when present.
	Module string `json:"module,omitempty"`
	// RawDependencies is kept as raw JSON, not a map, so Dependencies can
	// replay the object's source key order — map[string]string would
	// discard it, and the resolver's determinism invariant (§8 I7) depends
	// on visiting a package's dependencies in the order they were written.
	RawDependencies json.RawMessage `json:"dependencies,omitempty"`
}

// DependencyEntry is one key/value pair from a package.json "dependencies"
// object, in source order.
type DependencyEntry struct {
	Name  string
	Value string
}

// Parse parses package.json data.
func Parse(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ParseFile parses a package.json file through the given filesystem.
func ParseFile(filesystem fs.FileSystem, path string) (*PackageJSON, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// MainFile returns the package's nominal entry file: "module" if present,
// else "main", else the "index.js" fallback.
func (pkg *PackageJSON) MainFile() string {
	if pkg.Module != "" {
		return trimDotSlash(pkg.Module)
	}
	if pkg.Main != "" {
		return trimDotSlash(pkg.Main)
	}
	return "index.js"
}

// Dependencies returns the package's declared dependencies in the order
// they appear in the source document.
func (pkg *PackageJSON) Dependencies() ([]DependencyEntry, error) {
	if len(pkg.RawDependencies) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(pkg.RawDependencies))
	if _, err := dec.Token(); err != nil { // opening '{'
		return nil, err
	}

	var entries []DependencyEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, DependencyEntry{Name: keyTok.(string), Value: value})
	}
	return entries, nil
}

// DependencySpecifier returns the specifier to resolve for a dependency
// entry. Most values are plain semver ranges that don't change what gets
// resolved — the package name is the specifier. A value beginning with
// "file:" names a filesystem-relative path instead.
func DependencySpecifier(entry DependencyEntry) string {
	if rest, ok := strings.CutPrefix(entry.Value, "file:"); ok {
		return rest
	}
	return entry.Name
}

func trimDotSlash(path string) string {
	return strings.TrimPrefix(path, "./")
}
