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
	"path/filepath"
	"sort"
	"strings"
)

func stem(relPath string) string {
	return filepath.Base(relPath)
}

func pathDepth(relPath string) int {
	clean := filepath.ToSlash(filepath.Clean(relPath))
	if clean == "." || clean == "" {
		return 0
	}
	return len(strings.Split(clean, "/"))
}

// ancestorDirs returns relPath's ancestor directories, innermost first,
// always ending with "" to represent the resolver root itself. Every file
// belongs to at least the root group; this is what lets a file living
// directly at the resolver root still be visited during chunk augmentation
// (see §4.4) instead of never appearing in any group's Inclusions.
func ancestorDirs(relPath string) []string {
	var ancestors []string
	dir := filepath.Dir(relPath)
	for {
		if dir == "." || dir == "/" || dir == "" {
			ancestors = append(ancestors, "")
			return ancestors
		}
		ancestors = append(ancestors, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			ancestors = append(ancestors, "")
			return ancestors
		}
		dir = parent
	}
}

func sortedIndices(set map[int]struct{}) []int {
	idx := make([]int, 0, len(set))
	for i := range set {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
