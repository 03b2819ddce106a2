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
package webpackreport_test

import (
	"io/fs"
	"testing"

	"bennypowers.dev/depgraph/internal/mapfs"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/logging"
	"bennypowers.dev/depgraph/webpackreport"
)

func TestParseBasic(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/root/src/a.js", "", fs.FileMode(0644))
	mfs.AddFile("/root/src/b.js", "", fs.FileMode(0644))
	root, err := location.New(mfs, "/root")
	if err != nil {
		t.Fatalf("location.New(root) error = %v", err)
	}

	stats := []byte(`{
		"chunks": [
			{"id": 1, "initial": true, "parents": [], "siblings": [], "children": [2], "size": 100, "names": ["main"]},
			{"id": 2, "initial": false, "parents": [1], "siblings": [], "children": [], "size": 50, "names": ["vendor"]}
		],
		"modules": [
			{"name": "./src/a.js", "chunks": [1]},
			{"name": "babel-loader!./src/b.js", "chunks": [2]},
			{"name": "./src/ignored.js (ignored)", "chunks": [1]},
			{"name": "external \"fs\"", "chunks": [1]}
		]
	}`)

	report, err := webpackreport.Parse(mfs, root, logging.NopLogger{}, stats)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	aLoc, _ := location.New(mfs, "/root/src/a.js")
	bLoc, _ := location.New(mfs, "/root/src/b.js")

	aChunks, ok := report.ChunkMapping[aLoc]
	if !ok || len(aChunks) != 1 || aChunks[0].ID != 1 {
		t.Errorf("ChunkMapping[a.js] = %#v, want one chunk with id 1", aChunks)
	}

	bChunks, ok := report.ChunkMapping[bLoc]
	if !ok || len(bChunks) != 1 || bChunks[0].ID != 2 {
		t.Errorf("ChunkMapping[b.js] (loader-stripped) = %#v, want one chunk with id 2", bChunks)
	}

	if len(report.ChunkIDMap) != 2 {
		t.Errorf("ChunkIDMap has %d entries, want 2", len(report.ChunkIDMap))
	}
	if report.ChunkIDMap[1].Name != "main" {
		t.Errorf("ChunkIDMap[1].Name = %q, want %q", report.ChunkIDMap[1].Name, "main")
	}
}

func TestParseCompositeModulePropagatesChunks(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/root/src/inner.js", "", fs.FileMode(0644))
	root, _ := location.New(mfs, "/root")

	stats := []byte(`{
		"chunks": [{"id": 1, "initial": true, "parents": [], "siblings": [], "children": [], "size": 10, "names": ["main"]}],
		"modules": [
			{"name": "concat", "chunks": [1], "modules": [
				{"name": "./src/inner.js", "chunks": []}
			]}
		]
	}`)

	report, err := webpackreport.Parse(mfs, root, logging.NopLogger{}, stats)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	innerLoc, _ := location.New(mfs, "/root/src/inner.js")
	chunks, ok := report.ChunkMapping[innerLoc]
	if !ok || len(chunks) != 1 || chunks[0].ID != 1 {
		t.Errorf("ChunkMapping[inner.js] = %#v, want parent's chunk id 1 propagated", chunks)
	}
}

func TestParseMissingChunksOrModulesIsParseError(t *testing.T) {
	mfs := mapfs.New()
	root, _ := location.New(mfs, "/")

	_, err := webpackreport.Parse(mfs, root, logging.NopLogger{}, []byte(`{"modules": []}`))
	if err == nil {
		t.Fatal("Parse() error = nil, want ParseError for missing chunks array")
	}
	var parseErr *webpackreport.ParseError
	if !errorsAs(err, &parseErr) {
		t.Errorf("error = %v, want *webpackreport.ParseError", err)
	}
}

func errorsAs(err error, target **webpackreport.ParseError) bool {
	pe, ok := err.(*webpackreport.ParseError)
	if !ok {
		return false
	}
	*target = pe
	return true
}
