package meshlevel

// ZOffsetter is a surface height function. Queries outside the probed
// area are extrapolated and only as good as the fit allows.
type ZOffsetter interface {
	OffsetZ(x, y float64) float64
}

type flatOffsetter float64

func (f flatOffsetter) OffsetZ(x, y float64) float64 { return float64(f) }
