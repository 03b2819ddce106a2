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

// Package webpackreport ingests a webpack v4 stats document into a
// Location-keyed chunk mapping plus a chunk-id lookup table, for use by the
// analysis graph's chunk augmentation.
package webpackreport

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"bennypowers.dev/depgraph/fs"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/logging"
)

// ParseError means the document was not valid JSON, or a sub-report was
// missing its required modules or chunks array.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "webpackreport: " + e.Reason }

// Chunk is one bundler-produced chunk, as referenced by a module's chunk
// mapping or by id in ChunkIDMap.
type Chunk struct {
	ID         int
	Name       string
	Initial    bool
	Parents    []int
	Siblings   []int
	Children   []int
	ParsedSize int
}

// Report is the ingested statistics document: which chunks each source
// location ships in, and the chunk metadata indexed by id.
type Report struct {
	ChunkMapping map[location.Location][]Chunk
	ChunkIDMap   map[int]Chunk
}

type rawReport struct {
	Modules  []rawModule `json:"modules"`
	Chunks   []rawChunk  `json:"chunks"`
	Children []rawReport `json:"children"`
}

type rawChunk struct {
	ID       int      `json:"id"`
	Entry    bool     `json:"entry"`
	Initial  bool     `json:"initial"`
	Parents  []int    `json:"parents"`
	Siblings []int    `json:"siblings"`
	Children []int    `json:"children"`
	Size     float64  `json:"size"`
	Names    []string `json:"names"`
}

type rawModule struct {
	Name    string      `json:"name"`
	Chunks  []int       `json:"chunks"`
	Modules []rawModule `json:"modules"`
}

// loaderPrefix strips everything up to and including the last `!` in a
// webpack module name, e.g. "babel-loader!./src/index.js" -> "./src/index.js".
var loaderPrefix = regexp.MustCompile(`.+!`)

// Parse ingests a webpack v4 stats document. resolveRoot is joined against
// each (loader-prefix-stripped) module name to produce the Location keys of
// the resulting chunk mapping; filesystem backs the existence check that
// canonicalization requires.
func Parse(filesystem fs.FileSystem, resolveRoot location.Location, logger logging.Logger, data []byte) (*Report, error) {
	var root rawReport
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	subReports := root.Children
	if len(subReports) == 0 {
		subReports = []rawReport{root}
	}

	chunkMapping := make(map[location.Location][]Chunk)
	chunkIDMap := make(map[int]Chunk)

	for _, sub := range subReports {
		if sub.Modules == nil || sub.Chunks == nil {
			return nil, &ParseError{Reason: "sub-report missing modules or chunks"}
		}
		for _, rc := range sub.Chunks {
			chunkIDMap[rc.ID] = Chunk{
				ID:         rc.ID,
				Name:       strings.Join(rc.Names, ", "),
				Initial:    rc.Initial,
				Parents:    rc.Parents,
				Siblings:   rc.Siblings,
				Children:   rc.Children,
				ParsedSize: int(rc.Size),
			}
		}

		ingestModules(sub.Modules, filesystem, resolveRoot, logger, chunkIDMap, chunkMapping)
	}

	return &Report{ChunkMapping: chunkMapping, ChunkIDMap: chunkIDMap}, nil
}

func ingestModules(
	modules []rawModule,
	filesystem fs.FileSystem,
	resolveRoot location.Location,
	logger logging.Logger,
	chunkIDMap map[int]Chunk,
	chunkMapping map[location.Location][]Chunk,
) {
	queue := append([]rawModule(nil), modules...)
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]

		if strings.Contains(m.Name, " (ignored)") || strings.Contains(m.Name, " sync ") || strings.HasPrefix(m.Name, "external ") {
			continue
		}

		if len(m.Modules) > 0 {
			for i := range m.Modules {
				if len(m.Modules[i].Chunks) > 0 && !intSlicesEqual(m.Modules[i].Chunks, m.Chunks) {
					logger.Message("webpackreport: composite module %q child %q chunk mismatch, using parent's", m.Name, m.Modules[i].Name)
				}
				m.Modules[i].Chunks = m.Chunks
			}
			queue = append(queue, m.Modules...)
			continue
		}

		name := loaderPrefix.ReplaceAllString(m.Name, "")
		path := filepath.Join(resolveRoot.String(), name)
		loc, err := location.New(filesystem, path)
		if err != nil {
			// The module named in the stats document no longer exists on
			// disk (stale report, or a virtual/generated module); skip it
			// rather than fail the whole ingestion.
			continue
		}

		chunks := make([]Chunk, 0, len(m.Chunks))
		for _, id := range m.Chunks {
			if c, ok := chunkIDMap[id]; ok {
				chunks = append(chunks, c)
			}
		}
		chunkMapping[loc] = append(chunkMapping[loc], chunks...)
	}
}

func intSlicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
