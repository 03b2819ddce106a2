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
	"bytes"
	"encoding/json"
	"testing"

	"bennypowers.dev/depgraph/graph"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/logging"
	"bennypowers.dev/depgraph/modcache"
	"bennypowers.dev/depgraph/resolve"
	"bennypowers.dev/depgraph/testutil"
)

// TestSummarizeGoldenSimpleGraph pins Summarize()'s serialized shape against
// a committed golden file, loaded through testutil's disk-backed fixture
// helpers rather than the package's in-memory newFixture. Run with -update
// to regenerate the golden file after a deliberate output change.
func TestSummarizeGoldenSimpleGraph(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "simple-graph", "/root")

	root, err := location.New(mfs, "/root")
	if err != nil {
		t.Fatalf("location.New(root) error = %v", err)
	}
	entry, err := location.New(mfs, "/root/a.js")
	if err != nil {
		t.Fatalf("location.New(entry) error = %v", err)
	}

	r := resolve.New(mfs, root)
	cache, err := modcache.NewBuilder(mfs, r).Build(entry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	analysis, err := graph.CreateFromCache(mfs, r, cache, entry, logging.NopLogger{})
	if err != nil {
		t.Fatalf("CreateFromCache() error = %v", err)
	}

	actual, err := json.Marshal(analysis.Summarize())
	if err != nil {
		t.Fatalf("json.Marshal(Summarize()) error = %v", err)
	}

	testutil.UpdateGoldenFile(t, "golden/simple-graph.json", append(actual, '\n'))

	golden := testutil.LoadGoldenFile(t, "golden/simple-graph.json")
	if golden == nil {
		return // -update was passed; the file above was just (re)written.
	}
	if want := bytes.TrimRight(golden, "\n"); !bytes.Equal(want, actual) {
		t.Errorf("Summarize() output does not match golden file:\ngot:  %s\nwant: %s", actual, want)
	}
}
