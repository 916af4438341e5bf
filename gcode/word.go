package gcode

import (
	"strconv"
	"strings"
)

type Word struct {
	W   byte
	Arg float64
}

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

// IsMotion reports whether w is G0 or G1.
func (w Word) IsMotion() bool {
	return w.W == 'G' && (w.Arg == 0 || w.Arg == 1)
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	s = strings.TrimRight(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Format renders w with at most prec decimals.
func (w Word) Format(prec int) string {
	return string(w.W) + formatFloat(w.Arg, prec)
}

func (w Word) String() string {
	return w.Format(DefaultPrecision)
}
