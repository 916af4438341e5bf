package meshlevel

import (
	"errors"
	"fmt"

	"github.com/MartinBloedorn/pmu/coord"
	"github.com/MartinBloedorn/pmu/record"
)

const (
	// MinSamples is the smallest heightmap a surface can be fitted to.
	MinSamples = 4

	// CubicSamples is the heightmap size from which a smooth cubic
	// surface is fitted instead of a linear one.
	CubicSamples = 16
)

var ErrInsufficientData = errors.New("insufficient height samples")

// Fit builds a surface through the samples. Small heightmaps get a
// piecewise-linear fit; from CubicSamples on a cubic fit is used, a
// tensor spline when the samples form a full lattice and a thin-plate
// spline otherwise.
func Fit(samples []record.HeightSample) (ZOffsetter, error) {
	if len(samples) < MinSamples {
		return nil, fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientData, len(samples), MinSamples)
	}

	if len(samples) >= CubicSamples {
		g, ok, err := newGridSpline(samples, 4)
		if err != nil {
			return nil, err
		}
		if ok {
			return g, nil
		}
		return NewThinPlate(samples)
	}

	points := make([]coord.Point, len(samples))
	for i, s := range samples {
		points[i] = s.Point()
	}
	return NewMesh(points)
}
