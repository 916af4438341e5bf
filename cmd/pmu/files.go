package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MartinBloedorn/pmu/drill"
	"github.com/MartinBloedorn/pmu/gcode"
	"github.com/MartinBloedorn/pmu/record"
)

// readDrills picks the reader by extension; anything but .dxf is
// read as Excellon.
func readDrills(path string) ([]record.Drill, error) {
	if strings.EqualFold(filepath.Ext(path), ".dxf") {
		return drill.ReadDXF(path)
	}
	return drill.ReadExcellonFile(path)
}

func readProgram(path string) (record.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prog, err := gcode.ReadProgram(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// create opens path for writing, or stdout for "-".
func create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return nil, err
	}
	return os.Create(path)
}
