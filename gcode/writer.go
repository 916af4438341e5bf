package gcode

import (
	"bufio"
	"io"

	"github.com/MartinBloedorn/pmu/record"
)

// FormatItem renders a single item without the trailing newline. Raw
// lines are returned verbatim.
func FormatItem(it record.Item, prec int) string {
	switch v := it.(type) {
	case record.Motion:
		return MotionBlock(v.MotionStep).Format(prec)
	case record.Raw:
		return string(v)
	}
	return ""
}

type Writer struct {
	w    *bufio.Writer
	prec int
}

func NewWriter(w io.Writer, prec int) *Writer {
	return &Writer{w: bufio.NewWriter(w), prec: prec}
}

func (w *Writer) Write(it record.Item) error {
	_, err := w.w.WriteString(FormatItem(it, w.prec))
	if err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *Writer) Flush() error { return w.w.Flush() }

// WriteProgram writes every item of prog, one per line.
func WriteProgram(w io.Writer, prog record.Program, prec int) error {
	gw := NewWriter(w, prec)
	for _, it := range prog {
		err := gw.Write(it)
		if err != nil {
			return err
		}
	}
	return gw.Flush()
}
