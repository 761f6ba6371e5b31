package gen

import (
	"fmt"
	"strings"
)

// indentUnit is the indentation Dart code conventionally uses.
const indentUnit = "  "

// Writer accumulates generated text. It tracks the current indentation level
// and prepends it to every non-empty line.
type Writer struct {
	buf   strings.Builder
	depth int
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// P writes the concatenation of args as a single line. Calling P with no
// arguments writes a blank line without indentation.
func (w *Writer) P(args ...interface{}) {
	line := fmt.Sprint(args...)
	if line == "" {
		w.buf.WriteByte('\n')
		return
	}
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString(indentUnit)
	}
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
}

// In increases the indentation level by one unit.
func (w *Writer) In() {
	w.depth++
}

// Out decreases the indentation level by one unit.
// It panics if the level is already zero, which always indicates a bug in
// emission code.
func (w *Writer) Out() {
	if w.depth == 0 {
		panic("gen: unbalanced Writer.Out call")
	}
	w.depth--
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.buf.String()
}
