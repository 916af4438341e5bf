// Package drill reads drill positions from Excellon and DXF files.
package drill

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/MartinBloedorn/pmu/record"
)

var (
	ErrIncremental = errors.New("incremental mode (ICI) is not supported")
	ErrNoFormat    = errors.New("coordinates before a METRIC or INCH format line")
)

var (
	rxFormat = regexp.MustCompile(`^(METRIC|INCH)(,(LZ|TZ))?`)
	rxTool   = regexp.MustCompile(`^T(\d+)C([0-9.]+)`)
	rxSelect = regexp.MustCompile(`^T(\d+)$`)
	rxHit    = regexp.MustCompile(`X([+\-]?[0-9.]+)Y([+\-]?[0-9.]+)`)
)

const mmPerInch = 25.4

type tool struct {
	diameter float64
	hits     [][2]float64
}

type excellonReader struct {
	scale float64 // 0 until the units are known

	tools   map[int]*tool
	order   []int
	current *tool
}

// ReadExcellonFile opens path and reads it with ReadExcellon.
func ReadExcellonFile(path string) ([]record.Drill, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	drills, err := ReadExcellon(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return drills, nil
}

// ReadExcellon reads the drill hits of an Excellon file in millimetres,
// grouped by tool in the order the tools are defined. Hits made with T0,
// or before any tool is selected, get a diameter of record.NoTool.
func ReadExcellon(r io.Reader) ([]record.Drill, error) {
	er := &excellonReader{tools: make(map[int]*tool)}
	er.define(0, record.NoTool)

	s := bufio.NewScanner(r)
	var n int
	for s.Scan() {
		n++
		err := er.line(strings.ToUpper(strings.TrimSpace(s.Text())))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	var res []record.Drill
	for _, id := range er.order {
		t := er.tools[id]
		for _, h := range t.hits {
			res = append(res, record.Drill{Diameter: t.diameter, X: h[0], Y: h[1]})
		}
	}
	return res, nil
}

func (er *excellonReader) define(id int, diameter float64) {
	if _, ok := er.tools[id]; !ok {
		er.order = append(er.order, id)
	}
	er.tools[id] = &tool{diameter: diameter}
}

func (er *excellonReader) line(s string) error {
	switch {
	case s == "" || strings.HasPrefix(s, ";"):
		return nil
	case strings.HasPrefix(s, "ICI"):
		return ErrIncremental
	case s == "M71":
		er.scale = 1
		return nil
	case s == "M72":
		er.scale = mmPerInch
		return nil
	}

	if m := rxFormat.FindStringSubmatch(s); m != nil {
		er.scale = 1
		if m[1] == "INCH" {
			er.scale = mmPerInch
		}
		return nil
	}

	if m := rxTool.FindStringSubmatch(s); m != nil {
		if er.scale == 0 {
			return ErrNoFormat
		}
		id, _ := strconv.Atoi(m[1])
		d, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return fmt.Errorf("tool T%d: bad diameter %q", id, m[2])
		}
		er.define(id, d*er.scale)
		return nil
	}

	if m := rxSelect.FindStringSubmatch(s); m != nil {
		id, _ := strconv.Atoi(m[1])
		t, ok := er.tools[id]
		if !ok {
			return fmt.Errorf("undefined tool T%d", id)
		}
		er.current = t
		return nil
	}

	// TODO: coordinates with implied decimals (LZ/TZ without a point)
	if m := rxHit.FindStringSubmatch(s); m != nil {
		if er.scale == 0 {
			return ErrNoFormat
		}
		x, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q", m[1])
		}
		y, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q", m[2])
		}
		t := er.current
		if t == nil {
			t = er.tools[0]
		}
		t.hits = append(t.hits, [2]float64{x * er.scale, y * er.scale})
	}

	return nil
}
