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
package graph

import (
	"fmt"
	"sort"

	"bennypowers.dev/depgraph/fs"
	"bennypowers.dev/depgraph/location"
	"bennypowers.dev/depgraph/logging"
	"bennypowers.dev/depgraph/modcache"
	"bennypowers.dev/depgraph/resolve"
	"bennypowers.dev/depgraph/webpackreport"
)

// noChunk is the groupKey sentinel for "no chunk assigned yet" (spec's
// Option<ChunkId> == None).
const noChunk = -1

type groupKey struct {
	relPath string
	chunk   int
}

// Analysis is the root container built by CreateFromCache: the file-node
// arena, the group-node arena, and the lookup maps tying them together.
type Analysis struct {
	fs       fs.FileSystem
	resolver *resolve.Resolver
	logger   logging.Logger

	AllNodes         []*AnalysisNode
	AnalysisGroups   []*AnalysisNode
	NodeMap          map[location.Location]int
	AnalysisGroupMap map[groupKey]int
	EntrypointIndex  int
	Chunks           map[int]webpackreport.Chunk
}

// Entrypoint returns the node the analysis was built from.
func (a *Analysis) Entrypoint() *AnalysisNode { return a.AllNodes[a.EntrypointIndex] }

// CreateFromCache builds the file-node and group-node graph reachable from
// entry, using cache as the source of truth for each module's dependencies.
// filesystem and resolver are needed only to compute relative paths and
// validate ancestor directories; no further disk I/O occurs.
func CreateFromCache(filesystem fs.FileSystem, resolver *resolve.Resolver, cache *modcache.Cache, entry location.Location, logger logging.Logger) (*Analysis, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	a := &Analysis{
		fs:               filesystem,
		resolver:         resolver,
		logger:           logger,
		NodeMap:          make(map[location.Location]int),
		AnalysisGroupMap: make(map[groupKey]int),
	}

	entryMod, ok := cache.Get(entry)
	entryIsNodeModule := ok && entryMod.Kind == resolve.NodeModule

	entryRel, err := entry.MakeRelativeTo(resolver.ResolveRoot())
	if err != nil {
		return nil, err
	}

	entryNode := newFileNode(entry, entryRel, entryIsNodeModule)
	a.AllNodes = append(a.AllNodes, entryNode)
	a.NodeMap[entry] = 0
	a.EntrypointIndex = 0

	a.addToAncestorGroups(0, entryRel.String())

	queue := []int{0}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		node := a.AllNodes[idx]

		mod, ok := cache.Get(node.FullPath)
		if !ok {
			logger.Message("graph: no cached module for %s, skipping", node.FullPath)
			continue
		}

		for _, dep := range mod.Dependencies {
			targetLoc, ok := dep.Asset.Location()
			if !ok {
				continue // Unresolved: no location to traverse.
			}

			depMod, ok := cache.Get(targetLoc)
			if !ok {
				// Non-code assets are never cache members; this also
				// covers the "missing cache entry" warn-and-skip case.
				logger.Message("graph: no cached module for dependency %s, skipping", targetLoc)
				continue
			}

			if existingIdx, found := a.NodeMap[targetLoc]; found {
				node.Outgoing[existingIdx] = struct{}{}
				a.AllNodes[existingIdx].Incoming[idx] = struct{}{}
				for _, ancestor := range ancestorDirs(a.AllNodes[existingIdx].ResolverRelativePath.String()) {
					if gi, ok := a.AnalysisGroupMap[groupKey{ancestor, noChunk}]; ok {
						a.AnalysisGroups[gi].Incoming[idx] = struct{}{}
					}
				}
				continue
			}

			targetRel, err := targetLoc.MakeRelativeTo(resolver.ResolveRoot())
			if err != nil {
				logger.Message("graph: cannot relativize %s: %v, skipping", targetLoc, err)
				continue
			}

			newNode := newFileNode(targetLoc, targetRel, depMod.Kind == resolve.NodeModule)
			newNode.Incoming[idx] = struct{}{}
			newIdx := len(a.AllNodes)
			a.AllNodes = append(a.AllNodes, newNode)
			a.NodeMap[targetLoc] = newIdx

			a.addToAncestorGroups(newIdx, targetRel.String())

			node.Outgoing[newIdx] = struct{}{}
			queue = append(queue, newIdx)
		}

		for _, ancestor := range ancestorDirs(node.ResolverRelativePath.String()) {
			if gi, ok := a.AnalysisGroupMap[groupKey{ancestor, noChunk}]; ok {
				for o := range node.Outgoing {
					a.AnalysisGroups[gi].Outgoing[o] = struct{}{}
				}
			}
		}
	}

	return a, nil
}

// addToAncestorGroups ensures a group node exists (at chunk=None) for every
// ancestor directory of relPathStr, allocating as needed, and records
// nodeIdx in each group's Inclusions (and ImmediateChildren for the
// innermost ancestor).
func (a *Analysis) addToAncestorGroups(nodeIdx int, relPathStr string) {
	for i, ancestor := range ancestorDirs(relPathStr) {
		key := groupKey{ancestor, noChunk}
		gi, ok := a.AnalysisGroupMap[key]
		if !ok {
			rel, err := location.NewRelativePath(a.fs, a.resolver.ResolveRoot(), ancestor)
			if err != nil {
				// Ancestor directories of an existing file always exist;
				// this would only happen against a misbehaving fs double.
				continue
			}
			group := newGroupNode(rel, ancestor)
			// A freshly created group's Incoming starts seeded with the
			// node whose registration triggered the creation, mirroring
			// analysis.rs's `incoming: HashSet::from_iter(vec![own_index])`.
			group.Incoming[nodeIdx] = struct{}{}
			gi = len(a.AnalysisGroups)
			a.AnalysisGroups = append(a.AnalysisGroups, group)
			a.AnalysisGroupMap[key] = gi
		}
		a.AnalysisGroups[gi].Inclusions[nodeIdx] = struct{}{}
		if i == 0 {
			a.AnalysisGroups[gi].ImmediateChildren[nodeIdx] = struct{}{}
		}
	}
}

// AugmentWithWebpackReport overlays chunk-membership information from
// report onto the graph built by CreateFromCache. entrypointChunkPreference
// selects which of the entry's reported chunks anchors the "relevant" chunk
// set (itself plus its children and siblings) that every other module and
// group is checked against.
func (a *Analysis) AugmentWithWebpackReport(report *webpackreport.Report, entrypointChunkPreference int) error {
	entry := a.Entrypoint()
	chunksForEntry, ok := report.ChunkMapping[entry.FullPath]
	if !ok || entrypointChunkPreference >= len(chunksForEntry) {
		return &CustomError{Message: fmt.Sprintf("no chunk mapping for entrypoint %s", entry.FullPath)}
	}
	chunkE := chunksForEntry[entrypointChunkPreference]

	relevant := map[int]struct{}{chunkE.ID: {}}
	for _, c := range chunkE.Children {
		relevant[c] = struct{}{}
	}
	for _, c := range chunkE.Siblings {
		relevant[c] = struct{}{}
	}

	// Snapshot the group count: clones are appended to AnalysisGroups
	// during the loop and must not themselves be re-processed.
	originalGroupCount := len(a.AnalysisGroups)
	for gi := 0; gi < originalGroupCount; gi++ {
		group := a.AnalysisGroups[gi]
		identified := a.identifyChunksForGroup(group, report, relevant)
		if len(identified) == 0 {
			continue
		}

		primary := identified[0]
		group.Chunk = &primary
		for _, extra := range identified[1:] {
			clone := cloneGroup(group, extra)
			cloneIdx := len(a.AnalysisGroups)
			a.AnalysisGroups = append(a.AnalysisGroups, clone)
			a.AnalysisGroupMap[groupKey{group.groupKeyPath, extra}] = cloneIdx
		}
	}

	a.Chunks = make(map[int]webpackreport.Chunk, len(relevant))
	for id := range relevant {
		if c, ok := report.ChunkIDMap[id]; ok {
			a.Chunks[id] = c
		}
	}
	return nil
}

// identifyChunksForGroup walks a group's file-node inclusions in
// deterministic (sorted-index) order, assigning each unassigned node's
// chunk from the relevant set or marking it tree-shaken, and returns the
// distinct chunk ids discovered, sorted ascending so group.Chunk assignment
// is reproducible across runs.
func (a *Analysis) identifyChunksForGroup(group *AnalysisNode, report *webpackreport.Report, relevant map[int]struct{}) []int {
	seen := make(map[int]struct{})
	var identified []int

	for _, ni := range sortedIndices(group.Inclusions) {
		n := a.AllNodes[ni]

		if n.Chunk != nil {
			if _, ok := seen[*n.Chunk]; !ok {
				seen[*n.Chunk] = struct{}{}
				identified = append(identified, *n.Chunk)
			}
			continue
		}

		chunksForNode, ok := report.ChunkMapping[n.FullPath]
		if !ok {
			n.TreeShaken = true
			continue
		}

		matchedID := -1
		for _, c := range chunksForNode {
			if _, ok := relevant[c.ID]; ok {
				matchedID = c.ID
				break
			}
		}
		if matchedID == -1 {
			n.TreeShaken = true
			continue
		}

		id := matchedID
		n.Chunk = &id
		n.Identifier = fmt.Sprintf("%s?c=%d", n.Identifier, id)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			identified = append(identified, id)
		}
	}

	sort.Ints(identified)
	return identified
}
