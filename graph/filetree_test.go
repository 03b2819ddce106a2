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
package graph_test

import (
	"testing"

	"bennypowers.dev/depgraph/graph"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/logging"
	"bennypowers.dev/depgraph/modcache"
	"bennypowers.dev/depgraph/resolve"
)

func TestBuildFileTreeMirrorsDirectoryLayout(t *testing.T) {
	mfs, root := newFixture(t, map[string]string{
		"/root/a/b/c.js": `import d from "./d"; import e from "../e";`,
		"/root/a/b/d.js": ``,
		"/root/a/e.js":   ``,
	})
	r := resolve.New(mfs, root)
	entry, _ := location.New(mfs, "/root/a/b/c.js")

	cache, err := modcache.NewBuilder(mfs, r).Build(entry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	analysis, err := graph.CreateFromCache(mfs, r, cache, entry, logging.NopLogger{})
	if err != nil {
		t.Fatalf("CreateFromCache() error = %v", err)
	}

	tree := analysis.BuildFileTree()
	a, ok := tree.Children["a"]
	if !ok {
		t.Fatal("tree missing top-level \"a\" entry")
	}
	if names := a.SortedChildNames(); len(names) != 2 || names[0] != "b" || names[1] != "e.js" {
		t.Errorf("a's children = %v, want [b e.js]", names)
	}
	b, ok := a.Children["b"]
	if !ok {
		t.Fatal("a missing \"b\" entry")
	}
	cNode, ok := b.Children["c.js"]
	if !ok || cNode.NodeIndex != analysis.NodeMap[entry] {
		t.Errorf("b/c.js node index = %v, want %d", cNode, analysis.NodeMap[entry])
	}
}

func TestSummarizeIsDeterministic(t *testing.T) {
	mfs, root := newFixture(t, map[string]string{
		"/root/a.js": `import b from "./b";`,
		"/root/b.js": ``,
	})
	r := resolve.New(mfs, root)
	entry, _ := location.New(mfs, "/root/a.js")
	cache, err := modcache.NewBuilder(mfs, r).Build(entry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	analysis, err := graph.CreateFromCache(mfs, r, cache, entry, logging.NopLogger{})
	if err != nil {
		t.Fatalf("CreateFromCache() error = %v", err)
	}

	first := analysis.Summarize()
	second := analysis.Summarize()
	if len(first.Nodes) != 2 || len(second.Nodes) != 2 {
		t.Fatalf("Summarize() node counts = %d, %d, want 2, 2", len(first.Nodes), len(second.Nodes))
	}
	for i := range first.Nodes {
		if first.Nodes[i].Identifier != second.Nodes[i].Identifier {
			t.Errorf("node %d identifier not stable across calls: %q vs %q", i, first.Nodes[i].Identifier, second.Nodes[i].Identifier)
		}
	}
	if first.Entry != entry.String() {
		t.Errorf("Summary.Entry = %q, want %q", first.Entry, entry.String())
	}
}
