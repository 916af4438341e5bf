// Package hmap reads and writes heightmaps and probe grids as CSV.
package hmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MartinBloedorn/pmu/record"
)

// Read parses "x,y,z" rows. Blank lines and lines starting with # are
// skipped.
func Read(r io.Reader) ([]record.HeightSample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var res []record.HeightSample
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if len(row) < 3 {
			return nil, fmt.Errorf("line %d: need x,y,z, got %d fields", line, len(row))
		}
		var v [3]float64
		for i := range v {
			v[i], err = strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		res = append(res, record.HeightSample{X: v[0], Y: v[1], Z: v[2]})
	}
	return res, nil
}

func ReadFile(path string) ([]record.HeightSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

func format(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Write writes samples as "x,y,z" rows with prec decimals.
func Write(w io.Writer, samples []record.HeightSample, prec int) error {
	cw := csv.NewWriter(w)
	for _, s := range samples {
		err := cw.Write([]string{format(s.X, prec), format(s.Y, prec), format(s.Z, prec)})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGrid writes probe points as "x,y" rows with prec decimals.
func WriteGrid(w io.Writer, grid []record.GridPoint, prec int) error {
	cw := csv.NewWriter(w)
	for _, p := range grid {
		err := cw.Write([]string{format(p.X, prec), format(p.Y, prec)})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadGrid parses "x,y" rows written by WriteGrid. Extra columns are
// ignored, so a heightmap can be read back as its grid.
func ReadGrid(r io.Reader) ([]record.GridPoint, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var res []record.GridPoint
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: need x,y, got %d fields", line, len(row))
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		res = append(res, record.GridPoint{X: x, Y: y})
	}
	return res, nil
}
