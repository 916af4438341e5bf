package gcode

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/MartinBloedorn/pmu/record"
)

const mmPerInch = 25.4

var (
	ErrRelativeMotion    = errors.New("relative motion (G91) is not supported")
	ErrUnsupportedMotion = errors.New("unsupported motion mode")
)

// LineError is a parse failure at a given input line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// Parser reads G-code lines as program items.
//
// Straight G0/G1 moves, including axis-only lines under a modal G0/G1,
// become record.Motion in millimetres. Everything else is kept as
// record.Raw. Lines in inch mode are rewritten to millimetres.
type Parser struct {
	br *bufio.Reader
	vm *VM

	line    int
	pending []record.Item
}

func NewParser(r io.Reader) *Parser {
	p := &Parser{vm: NewVM()}
	if br, ok := r.(*bufio.Reader); ok {
		p.br = br
	} else {
		p.br = bufio.NewReader(r)
	}
	return p
}

var (
	rx      = regexp.MustCompile(`^([A-Z][+\-]?(\d+\.?\d*|\.\d+))+$`)
	rxSplit = regexp.MustCompile(`[A-Z][+\-]?(\d+\.?\d*|\.\d+)`)

	rxParenComment = regexp.MustCompile(`\([^)]*\)`)
)

// ParseBlock tokenizes a single line. Comments are dropped. It returns
// false for lines that are empty or not a plain word sequence.
func ParseBlock(line string) (Block, bool) {
	s := strings.SplitN(line, ";", 2)[0]
	s = rxParenComment.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "")
	s = strings.ToUpper(s)

	if s == "" || !rx.MatchString(s) {
		return nil, false
	}

	codes := rxSplit.FindAllString(s, -1)
	res := make(Block, len(codes))
	for i, c := range codes {
		arg, err := strconv.ParseFloat(c[1:], 64)
		if err != nil {
			return nil, false
		}
		res[i] = Word{W: c[0], Arg: arg}
	}
	return res, true
}

func (p *Parser) Read() (record.Item, error) {
	if len(p.pending) > 0 {
		it := p.pending[0]
		p.pending = p.pending[1:]
		return it, nil
	}

	s, err := p.br.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	p.line++
	s = strings.TrimRight(s, "\r\n")

	items, err := p.translate(s)
	if err != nil {
		return nil, &LineError{Line: p.line, Text: s, Err: err}
	}
	p.pending = items[1:]
	return items[0], nil
}

func (p *Parser) translate(s string) ([]record.Item, error) {
	b, ok := ParseBlock(s)
	if !ok {
		return []record.Item{record.Raw(s)}, nil
	}

	err := p.vm.Run(b)
	if err != nil {
		return nil, err
	}
	// units as set by this line
	inches := p.vm.Inches()

	if !b.HasAxis() || b.HasGroup(ModalGroupNonModal) {
		if !inches {
			return []record.Item{record.Raw(s)}, nil
		}
		return []record.Item{record.Raw(toMetric(b).String())}, nil
	}

	if p.vm.RelativeMotion() {
		return nil, ErrRelativeMotion
	}
	switch p.vm.Motion() {
	case 0, 1:
	default:
		return nil, fmt.Errorf("%w: G%s", ErrUnsupportedMotion, formatFloat(p.vm.Motion(), 4))
	}

	if inches {
		b = toMetric(b)
	}

	var res []record.Item
	var extra Block
	step := record.MotionStep{Mode: record.ModeUnset}
	for _, w := range b {
		switch {
		case w.IsMotion():
			step.Mode = record.Mode(w.Arg)
		case w.W == 'F':
			step.Feed = record.Float(w.Arg)
		case w.W == 'X':
			step.X = record.Float(w.Arg)
		case w.W == 'Y':
			step.Y = record.Float(w.Arg)
		case w.W == 'Z':
			step.Z = record.Float(w.Arg)
		default:
			extra = append(extra, w)
		}
	}
	if len(extra) > 0 {
		res = append(res, record.Raw(extra.String()))
	}
	return append(res, record.Motion{MotionStep: step}), nil
}

// toMetric rewrites G20 to G21 and scales lengths from inches.
func toMetric(b Block) Block {
	b = b.Clone()
	for i, w := range b {
		switch w.W {
		case 'X', 'Y', 'Z', 'F', 'I', 'J', 'K', 'R':
			b[i].Arg = w.Arg * mmPerInch
		case 'G':
			if w.Arg == 20 {
				b[i].Arg = 21
			}
		}
	}
	return b
}

// ReadProgram parses everything r yields.
func ReadProgram(r io.Reader) (record.Program, error) {
	p := NewParser(r)
	var prog record.Program
	for {
		it, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		prog = append(prog, it)
	}
	return prog, nil
}

// Parse reads a whole program from a string.
func Parse(data string) (record.Program, error) {
	return ReadProgram(bytes.NewBufferString(data))
}

func MustParse(data string) record.Program {
	prog, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return prog
}
