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

import "sync"

// SafeAnalysis guards a completed Analysis behind a reader-writer lock so a
// host process can serialize the graph from one goroutine while another
// rebuilds it. The core itself never needs this — CreateFromCache and
// AugmentWithWebpackReport run to completion on a single goroutine — it
// exists only for the exclusive-build/shared-read contract at the host
// boundary.
type SafeAnalysis struct {
	mu       sync.RWMutex
	analysis *Analysis
}

// NewSafeAnalysis wraps an already-built Analysis.
func NewSafeAnalysis(a *Analysis) *SafeAnalysis {
	return &SafeAnalysis{analysis: a}
}

// Read runs fn with shared read access to the current Analysis.
func (s *SafeAnalysis) Read(fn func(*Analysis)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.analysis)
}

// Replace swaps in a newly built Analysis under exclusive access.
func (s *SafeAnalysis) Replace(a *Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = a
}
