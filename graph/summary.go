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

// NodeSummary is the JSON-friendly projection of one AnalysisNode, with
// index sets flattened to sorted slices so serialized output is
// deterministic across runs.
type NodeSummary struct {
	Identifier   string `json:"identifier"`
	Path         string `json:"path"`
	IsNodeModule bool   `json:"isNodeModule,omitempty"`
	IsGroup      bool   `json:"isGroup,omitempty"`
	Depth        int    `json:"depth"`
	TreeShaken   bool   `json:"treeShaken,omitempty"`
	Chunk        *int   `json:"chunk,omitempty"`
	Incoming     []int  `json:"incoming,omitempty"`
	Outgoing     []int  `json:"outgoing,omitempty"`
	Inclusions   []int  `json:"inclusions,omitempty"`
}

// Summary is the full JSON-serializable projection of an Analysis: every
// file node, every group node, and the chunk metadata relevant to the
// entrypoint (empty until AugmentWithWebpackReport has run).
type Summary struct {
	Entry  string               `json:"entry"`
	Nodes  []NodeSummary        `json:"nodes"`
	Groups []NodeSummary        `json:"groups,omitempty"`
	Chunks map[int]summaryChunk `json:"chunks,omitempty"`
}

type summaryChunk struct {
	Name       string `json:"name,omitempty"`
	Initial    bool   `json:"initial,omitempty"`
	ParsedSize int    `json:"parsedSize,omitempty"`
}

// Summarize projects a fully or partially built Analysis into its
// serializable form.
func (a *Analysis) Summarize() Summary {
	s := Summary{
		Entry: a.Entrypoint().FullPath.String(),
		Nodes: make([]NodeSummary, len(a.AllNodes)),
	}
	for i, n := range a.AllNodes {
		s.Nodes[i] = summarizeNode(n)
	}
	for _, g := range a.AnalysisGroups {
		s.Groups = append(s.Groups, summarizeNode(g))
	}
	if a.Chunks != nil {
		s.Chunks = make(map[int]summaryChunk, len(a.Chunks))
		for id, c := range a.Chunks {
			s.Chunks[id] = summaryChunk{Name: c.Name, Initial: c.Initial, ParsedSize: c.ParsedSize}
		}
	}
	return s
}

func summarizeNode(n *AnalysisNode) NodeSummary {
	return NodeSummary{
		Identifier:   n.Identifier,
		Path:         n.ResolverRelativePath.String(),
		IsNodeModule: n.IsNodeModule,
		IsGroup:      n.IsGroup,
		Depth:        n.Depth,
		TreeShaken:   n.TreeShaken,
		Chunk:        n.Chunk,
		Incoming:     sortedIndices(n.Incoming),
		Outgoing:     sortedIndices(n.Outgoing),
		Inclusions:   sortedIndices(n.Inclusions),
	}
}
