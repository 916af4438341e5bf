package gcode

import (
	"bytes"
	"io"
)

// Buffer renders the items of a Reader as G-code text.
type Buffer struct {
	gr   Reader
	prec int
	buf  bytes.Buffer
	err  error
}

var _ io.Reader = &Buffer{}

func NewBuffer(r Reader, prec int) *Buffer {
	return &Buffer{gr: r, prec: prec}
}

func (b *Buffer) Buffered() []byte { return b.buf.Bytes() }

func (b *Buffer) Read(p []byte) (n int, err error) {
	for b.err == nil && b.buf.Len() < len(p) {
		it, err := b.gr.Read()
		if err != nil {
			b.err = err
			break
		}
		b.buf.WriteString(FormatItem(it, b.prec))
		b.buf.WriteByte('\n')
	}

	if b.buf.Len() > 0 {
		return b.buf.Read(p)
	}
	return 0, b.err
}
