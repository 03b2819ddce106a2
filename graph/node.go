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

// Package graph builds the dependency graph from a resolved module cache:
// file nodes and the directory-aggregate group nodes that mirror the
// project's layout, with optional chunk-membership augmentation from a
// bundler report. Edges are stored as index sets into an arena (AllNodes,
// AnalysisGroups) rather than as pointer-aliased, reference-counted cells —
// mutation is always `arena[i].field[j] = struct{}{}`, which keeps the
// incoming/outgoing invariant trivial to maintain and check.
package graph

import "bennypowers.dev/depgraph/location"

// AnalysisNode is one node of the graph: either a file (a parsed module) or
// a group (a directory aggregate). IsGroup distinguishes the two; Inclusions
// and ImmediateChildren are meaningful only on groups.
type AnalysisNode struct {
	Identifier            string
	FullPath              location.Location
	ResolverRelativePath  location.RelativePath
	Stem                  string
	IsNodeModule          bool
	IsGroup               bool
	Depth                 int
	TreeShaken            bool
	Chunk                 *int
	Incoming              map[int]struct{}
	Outgoing              map[int]struct{}
	Inclusions            map[int]struct{}
	ImmediateChildren     map[int]struct{}

	// groupKeyPath is the ancestorDirs-produced key a group node was
	// registered under in Analysis.AnalysisGroupMap (groups only). It is
	// kept separate from ResolverRelativePath.String() because
	// location.RelativePath normalizes the resolver root itself to "."
	// via filepath.Clean, while the root ancestor key is "".
	groupKeyPath string
}

func newFileNode(full location.Location, rel location.RelativePath, isNodeModule bool) *AnalysisNode {
	return &AnalysisNode{
		Identifier:           full.String(),
		FullPath:             full,
		ResolverRelativePath: rel,
		Stem:                 stem(rel.String()),
		IsNodeModule:         isNodeModule,
		Depth:                pathDepth(rel.String()),
		Incoming:             map[int]struct{}{},
		Outgoing:             map[int]struct{}{},
	}
}

func newGroupNode(rel location.RelativePath, groupKeyPath string) *AnalysisNode {
	relStr := rel.String()
	return &AnalysisNode{
		Identifier:           relStr,
		ResolverRelativePath: rel,
		Stem:                 stem(relStr),
		IsGroup:              true,
		Depth:                pathDepth(relStr),
		Incoming:             map[int]struct{}{},
		Outgoing:             map[int]struct{}{},
		Inclusions:           map[int]struct{}{},
		ImmediateChildren:    map[int]struct{}{},
		groupKeyPath:         groupKeyPath,
	}
}

// cloneGroup copies a group node for a new chunk id, per §4.4's
// per-chunk group cloning. The clone shares Inclusions and
// ImmediateChildren with the original — both describe the same physical
// directory contents, only the chunk tag differs.
func cloneGroup(orig *AnalysisNode, chunk int) *AnalysisNode {
	c := chunk
	return &AnalysisNode{
		Identifier:           orig.Identifier,
		FullPath:             orig.FullPath,
		ResolverRelativePath: orig.ResolverRelativePath,
		Stem:                 orig.Stem,
		IsGroup:              true,
		Depth:                orig.Depth,
		Chunk:                &c,
		Incoming:             orig.Incoming,
		Outgoing:             orig.Outgoing,
		Inclusions:           orig.Inclusions,
		ImmediateChildren:    orig.ImmediateChildren,
		groupKeyPath:         orig.groupKeyPath,
	}
}
