// Package writer provides the text output collaborator used by schema
// objects to render themselves as DDL. The writer is error-sticky: the
// first write failure is remembered and all later writes become no-ops,
// so rendering code can stay free of per-line error handling.
package writer

import (
	"fmt"
	"io"
)

// Writer writes DDL text to an underlying io.Writer.
type Writer struct {
	w         io.Writer
	delimiter string
	err       error
}

// New creates a Writer that terminates statements with the given delimiter.
func New(w io.Writer, delimiter string) *Writer {
	return &Writer{w: w, delimiter: delimiter}
}

// Print writes formatted text without a trailing newline.
func (w *Writer) Print(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Println writes formatted text followed by a newline.
func (w *Writer) Println(format string, args ...any) {
	w.Print(format+"\n", args...)
}

// Delimiter writes the configured statement delimiter.
func (w *Writer) Delimiter() {
	w.Print("%s", w.delimiter)
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}
