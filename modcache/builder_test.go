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
package modcache_test

import (
	"io/fs"
	"testing"

	"bennypowers.dev/depgraph/internal/mapfs"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/modcache"
	"bennypowers.dev/depgraph/resolve"
)

func newFixture(t *testing.T, files map[string]string) (*mapfs.MapFileSystem, location.Location) {
	t.Helper()
	mfs := mapfs.New()
	for path, content := range files {
		mfs.AddFile(path, content, fs.FileMode(0644))
	}
	root, err := location.New(mfs, "/root")
	if err != nil {
		t.Fatalf("location.New(root) error = %v", err)
	}
	return mfs, root
}

func TestBuildWalksModuleGraph(t *testing.T) {
	mfs, root := newFixture(t, map[string]string{
		"/root/src/a.js": `import b from "./b"; import c from "./c";`,
		"/root/src/b.js": `export const b = 1;`,
		"/root/src/c.js": `import a from "./a";`, // cycle back to a.js
	})
	r := resolve.New(mfs, root)
	entry, err := location.New(mfs, "/root/src/a.js")
	if err != nil {
		t.Fatalf("location.New(a.js) error = %v", err)
	}

	cache, err := modcache.NewBuilder(mfs, r).Build(entry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if cache.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (cycle must not cause infinite recursion)", cache.Len())
	}

	aMod, ok := cache.Get(entry)
	if !ok {
		t.Fatal("entry module missing from cache")
	}
	if len(aMod.Dependencies) != 2 {
		t.Fatalf("a.js dependencies = %#v, want 2", aMod.Dependencies)
	}

	cLoc, _ := location.New(mfs, "/root/src/c.js")
	cMod, ok := cache.Get(cLoc)
	if !ok {
		t.Fatal("c.js module missing from cache")
	}
	if len(cMod.Dependencies) != 1 {
		t.Fatalf("c.js dependencies = %#v, want 1", cMod.Dependencies)
	}
}

func TestBuildInsertsNodePackageAtTargetAndDirectory(t *testing.T) {
	mfs, root := newFixture(t, map[string]string{
		"/root/src/a.js": `import leftPad from "left-pad"`,
		"/root/node_modules/left-pad/package.json": `{"name": "left-pad", "main": "index.js"}`,
		"/root/node_modules/left-pad/index.js":     `module.exports = {};`,
	})
	r := resolve.New(mfs, root)
	entry, _ := location.New(mfs, "/root/src/a.js")

	cache, err := modcache.NewBuilder(mfs, r).Build(entry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	pkgDir, _ := location.New(mfs, "/root/node_modules/left-pad")
	targetFile, _ := location.New(mfs, "/root/node_modules/left-pad/index.js")

	if !cache.Has(pkgDir) {
		t.Error("cache missing entry at package directory")
	}
	if !cache.Has(targetFile) {
		t.Error("cache missing entry at target file")
	}
}

func TestBuildUnresolvedDoesNotAbort(t *testing.T) {
	mfs, root := newFixture(t, map[string]string{
		"/root/src/a.js": `import nowhere from "nowhere"`,
	})
	r := resolve.New(mfs, root)
	entry, _ := location.New(mfs, "/root/src/a.js")

	cache, err := modcache.NewBuilder(mfs, r).Build(entry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cache.Len())
	}
}

func TestLocationsIsSortedAndDeterministic(t *testing.T) {
	mfs, root := newFixture(t, map[string]string{
		"/root/src/a.js": `import z from "./z"; import b from "./b";`,
		"/root/src/z.js": ``,
		"/root/src/b.js": ``,
	})
	r := resolve.New(mfs, root)
	entry, _ := location.New(mfs, "/root/src/a.js")

	cache, err := modcache.NewBuilder(mfs, r).Build(entry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	first := cache.Locations()
	second := cache.Locations()
	if len(first) != len(second) {
		t.Fatalf("Locations() length changed between calls")
	}
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Fatalf("Locations() order not stable at index %d", i)
		}
		if i > 0 && first[i-1].String() >= first[i].String() {
			t.Fatalf("Locations() not sorted at index %d", i)
		}
	}
}
