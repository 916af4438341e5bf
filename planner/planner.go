// Package planner runs grid generation and leveling against one
// parameter set and publishes the latest result.
package planner

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/MartinBloedorn/pmu/meshlevel"
	"github.com/MartinBloedorn/pmu/params"
	"github.com/MartinBloedorn/pmu/probegrid"
	"github.com/MartinBloedorn/pmu/record"
	"github.com/google/uuid"
)

type Kind int

const (
	KindNone Kind = iota
	KindGrid
	KindGCode
)

func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindGCode:
		return "gcode"
	}
	return "none"
}

// Buffer is a published result. Its slices are shared and must not be
// modified.
type Buffer struct {
	ID          uuid.UUID
	Kind        Kind
	Description string
	Created     time.Time

	Grid    []record.GridPoint
	Program record.Program
}

type Option func(*Planner)

// WithRand sets the jitter source used when the seed parameter is 0.
func WithRand(rnd probegrid.Rand) Option {
	return func(pl *Planner) { pl.rnd = rnd }
}

type Planner struct {
	mx     sync.Mutex
	params params.Params
	rnd    probegrid.Rand
	buf    Buffer

	hooks []func(Buffer)
}

// New validates p and returns a Planner with nothing published.
func New(p params.Params, opts ...Option) (*Planner, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}

	pl := &Planner{params: p.Clone()}
	for _, o := range opts {
		o(pl)
	}
	return pl, nil
}

// Params returns a copy of the current parameters.
func (pl *Planner) Params() params.Params {
	pl.mx.Lock()
	defer pl.mx.Unlock()
	return pl.params.Clone()
}

// SetParam changes a single parameter. Invalid values are rejected and
// leave the parameters unchanged.
func (pl *Planner) SetParam(name string, value interface{}) error {
	pl.mx.Lock()
	defer pl.mx.Unlock()
	return pl.params.Set(name, value)
}

// DeleteParam removes a free-form parameter.
func (pl *Planner) DeleteParam(name string) bool {
	pl.mx.Lock()
	defer pl.mx.Unlock()
	return pl.params.Delete(name)
}

// Buffer returns the last published result.
func (pl *Planner) Buffer() Buffer {
	pl.mx.Lock()
	defer pl.mx.Unlock()
	return pl.buf
}

// OnPublish registers fn to be called after every publish.
func (pl *Planner) OnPublish(fn func(Buffer)) {
	pl.mx.Lock()
	defer pl.mx.Unlock()
	pl.hooks = append(pl.hooks, fn)
}

func (pl *Planner) publish(b Buffer) {
	b.ID = uuid.New()
	b.Created = time.Now()

	pl.mx.Lock()
	pl.buf = b
	hooks := append([]func(Buffer){}, pl.hooks...)
	pl.mx.Unlock()

	for _, fn := range hooks {
		fn(b)
	}
}

func (pl *Planner) random(seed int64) probegrid.Rand {
	if seed != 0 {
		return rand.New(rand.NewSource(seed))
	}
	return pl.rnd
}

// GenerateGrid plans a probing grid around drills and publishes it.
// On error the published buffer is left as it was.
func (pl *Planner) GenerateGrid(drills []record.Drill) ([]record.GridPoint, error) {
	p := pl.Params()
	cfg, err := GridConfig(p)
	if err != nil {
		return nil, err
	}
	g, err := probegrid.New(cfg, pl.random(p.Seed))
	if err != nil {
		return nil, err
	}

	grid, err := g.Generate(drills)
	if err != nil {
		return nil, err
	}

	log.Printf("Planner: generated %d probe points from %d drills", len(grid), len(drills))
	pl.publish(Buffer{
		Kind:        KindGrid,
		Description: fmt.Sprintf("probe grid %dx%d, %d drills", cfg.TicksX, cfg.TicksY, len(drills)),
		Grid:        grid,
	})
	return grid, nil
}

// Level fits a surface to samples, levels prog against it and publishes
// the result. On error the published buffer is left as it was.
func (pl *Planner) Level(prog record.Program, samples []record.HeightSample) (record.Program, error) {
	if len(prog) == 0 {
		return nil, meshlevel.ErrEmptyInput
	}
	surface, err := meshlevel.Fit(samples)
	if err != nil {
		return nil, err
	}
	return pl.LevelSurface(prog, surface)
}

// LevelSurface levels prog against an already fitted surface.
func (pl *Planner) LevelSurface(prog record.Program, surface meshlevel.ZOffsetter) (record.Program, error) {
	cfg, err := LevelConfig(pl.Params())
	if err != nil {
		return nil, err
	}

	out, err := meshlevel.Apply(cfg, prog, surface)
	if err != nil {
		return nil, err
	}

	pl.publish(Buffer{
		Kind:        KindGCode,
		Description: fmt.Sprintf("leveled program, %d motions (was %d)", out.Motions(), prog.Motions()),
		Program:     out,
	})
	return out, nil
}
