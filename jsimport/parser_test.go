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
package jsimport_test

import (
	"reflect"
	"testing"

	"bennypowers.dev/depgraph/jsimport"
)

func TestParseMany(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []jsimport.Entry
	}{
		{
			name: "mixed static imports and export-from",
			source: `
				import * as x from "ramda";
				import { a } from "gallileo";
				import bazooka from "bazooka";
				import Comp from "./components/c";
				export * from "./local";
			`,
			want: []jsimport.Entry{
				{Kind: jsimport.Import, Specifier: "ramda"},
				{Kind: jsimport.Import, Specifier: "gallileo"},
				{Kind: jsimport.Import, Specifier: "bazooka"},
				{Kind: jsimport.Import, Specifier: "./components/c"},
				{Kind: jsimport.ExportFrom, Specifier: "./local"},
			},
		},
		{
			name:   "dynamic import",
			source: `const m = import('./async/C');`,
			want: []jsimport.Entry{
				{Kind: jsimport.AsyncImport, Specifier: "./async/C"},
			},
		},
		{
			name: "type-only imports are elided",
			source: `import type Foo from "x";
				import { type T } from "y";
				import real from "z";`,
			want: []jsimport.Entry{
				{Kind: jsimport.Import, Specifier: "z"},
			},
		},
		{
			name:   "require call",
			source: `const r = require("ramda");`,
			want: []jsimport.Entry{
				{Kind: jsimport.Require, Specifier: "ramda"},
			},
		},
		{
			name:   "no imports present",
			source: `function f() { return 1; }`,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jsimport.ParseMany(tt.source)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMany(%q) = %#v, want %#v", tt.source, got, tt.want)
			}
		})
	}
}

func TestParseManyDeterministic(t *testing.T) {
	source := `import a from "a"; import b from "b"; require("c");`
	first := jsimport.ParseMany(source)
	second := jsimport.ParseMany(source)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ParseMany is not deterministic: %#v != %#v", first, second)
	}
}
