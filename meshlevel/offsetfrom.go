package meshlevel

import (
	"github.com/MartinBloedorn/pmu/record"
)

// OffsetFrom returns a copy of samples with z subtracted from every height,
// turning absolute probe readings into offsets from a reference.
func OffsetFrom(z float64, samples []record.HeightSample) []record.HeightSample {
	p := make([]record.HeightSample, len(samples))
	copy(p, samples)

	for i := range p {
		p[i].Z -= z
	}
	return p
}
