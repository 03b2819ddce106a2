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

// Package output provides shared output utilities for depgraph CLI commands.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// JSON marshals v and writes it, newline-terminated, to the file named by
// viper's "output" flag, or to stdout when that flag is unset. Writing is
// a CLI-boundary concern, so it goes straight through os rather than the
// core's read-only fs.FileSystem.
func JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	return Write(data)
}

// NDJSON marshals each element of v onto its own line and writes the
// result the same way JSON does, for batch commands that stream one
// record per input.
func NDJSON(v []any) error {
	var buf []byte
	for _, item := range v {
		line, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling output line: %w", err)
		}
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	return writeRaw(buf)
}

// Write writes data, appending a trailing newline, to the file named by
// viper's "output" flag, or to stdout when unset.
func Write(data []byte) error {
	return writeRaw(append(data, '\n'))
}

func writeRaw(data []byte) error {
	if outputPath := viper.GetString("output"); outputPath != "" {
		return os.WriteFile(outputPath, data, 0644)
	}
	fmt.Print(string(data))
	return nil
}
