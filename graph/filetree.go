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
	"sort"
	"strings"
)

// FileTreeNode is a pure UI-navigation convenience: a directory tree
// derived from the already-built node arena, for hosts that want to render
// a file browser alongside the dependency graph. It carries no edges or
// chunk information and is never consulted by CreateFromCache or
// AugmentWithWebpackReport.
type FileTreeNode struct {
	Name      string
	NodeIndex int // index into Analysis.AllNodes; -1 for directories
	Children  map[string]*FileTreeNode
}

func newFileTreeNode(name string) *FileTreeNode {
	return &FileTreeNode{Name: name, NodeIndex: -1, Children: map[string]*FileTreeNode{}}
}

// BuildFileTree assembles a navigation tree from every file node currently
// in the analysis, keyed by relative path component.
func (a *Analysis) BuildFileTree() *FileTreeNode {
	root := newFileTreeNode("")
	for i, node := range a.AllNodes {
		segments := strings.Split(filepathToSlash(node.ResolverRelativePath.String()), "/")
		cursor := root
		for depth, seg := range segments {
			if seg == "" {
				continue
			}
			child, ok := cursor.Children[seg]
			if !ok {
				child = newFileTreeNode(seg)
				cursor.Children[seg] = child
			}
			if depth == len(segments)-1 {
				child.NodeIndex = i
			}
			cursor = child
		}
	}
	return root
}

// SortedChildNames returns a node's child names in lexical order, for
// deterministic rendering.
func (n *FileTreeNode) SortedChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
