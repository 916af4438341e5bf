package gcode

import (
	"errors"
	"strings"

	"github.com/MartinBloedorn/pmu/record"
)

// DefaultPrecision is used when a Block or Word is printed without one.
const DefaultPrecision = 4

type Block []Word

func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

func (b Block) Has(w Word) bool {
	for _, g := range b {
		if g == w {
			return true
		}
	}
	return false
}

func (b Block) HasAxis() bool {
	for _, g := range b {
		if g.IsAxis() {
			return true
		}
	}
	return false
}

func (b Block) HasGroup(m ModalGroup) bool {
	for _, g := range b {
		if g.ModalGroup() == m {
			return true
		}
	}
	return false
}

func (b Block) Clone() Block {
	c := make(Block, len(b))
	copy(c, b)
	return c
}

func (b Block) Validate() error {
	var checkWord [256]bool
	var checkModal [256]bool

	var m ModalGroup
	for _, g := range b {
		if !g.IsValid() {
			return errors.New("invalid word in block")
		}
		if g.W != 'G' && g.W != 'M' && checkWord[g.W] {
			return errors.New("word was repeated in a block")
		}
		checkWord[g.W] = true
		m = g.ModalGroup()
		if m != ModalGroupNone && m != ModalGroupNonModal && checkModal[m] {
			return errors.New("multiple words from same modal group")
		}
		checkModal[m] = true
	}

	return nil
}

// Format renders the words separated by spaces, numbers with at most
// prec decimals.
func (b Block) Format(prec int) string {
	s := make([]string, len(b))
	for i, w := range b {
		s[i] = w.Format(prec)
	}
	return strings.Join(s, " ")
}

func (b Block) String() string {
	return b.Format(DefaultPrecision)
}

// MotionBlock returns the words of a motion step: G0/G1 when the mode is
// set, then F, X, Y and Z for the fields present.
func MotionBlock(s record.MotionStep) Block {
	var b Block
	switch s.Mode {
	case record.ModeRapid:
		b = append(b, Word{W: 'G', Arg: 0})
	case record.ModeLinear:
		b = append(b, Word{W: 'G', Arg: 1})
	}
	if s.Feed != nil {
		b = append(b, Word{W: 'F', Arg: *s.Feed})
	}
	if s.X != nil {
		b = append(b, Word{W: 'X', Arg: *s.X})
	}
	if s.Y != nil {
		b = append(b, Word{W: 'Y', Arg: *s.Y})
	}
	if s.Z != nil {
		b = append(b, Word{W: 'Z', Arg: *s.Z})
	}
	return b
}
