package gcode

import (
	"io"

	"github.com/MartinBloedorn/pmu/record"
)

// Reader yields program items until io.EOF.
type Reader interface {
	Read() (record.Item, error)
}

// ProgramReader reads the items of an in-memory program.
type ProgramReader struct {
	Program record.Program
	n       int
}

func (r *ProgramReader) Read() (record.Item, error) {
	if r.n == len(r.Program) {
		return nil, io.EOF
	}

	r.n++
	return r.Program[r.n-1], nil
}
