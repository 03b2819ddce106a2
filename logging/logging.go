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

// Package logging declares the progress/warning collaborator the module
// cache builder and analysis graph invoke during construction, and a
// stderr-backed implementation for CLI use. Neither the core nor its tests
// depend on a structured-logging library; a single-method interface plus
// fmt.Fprintf is the idiom the rest of this codebase follows throughout.
package logging

import (
	"fmt"
	"io"
	"os"
)

// Logger receives progress and warning messages during cache building and
// graph construction. It is side-effecting only; it never influences
// control flow.
type Logger interface {
	Message(format string, args ...any)
}

// NopLogger discards every message. It is the default for callers that
// don't care about progress output, such as most unit tests.
type NopLogger struct{}

// Message implements Logger.
func (NopLogger) Message(format string, args ...any) {}

// WriterLogger writes messages to an io.Writer, one per line.
type WriterLogger struct {
	Out io.Writer
}

// NewStderrLogger returns a WriterLogger writing to os.Stderr.
func NewStderrLogger() *WriterLogger {
	return &WriterLogger{Out: os.Stderr}
}

// Message implements Logger.
func (l *WriterLogger) Message(format string, args ...any) {
	fmt.Fprintf(l.Out, format+"\n", args...)
}
