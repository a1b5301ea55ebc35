package calculation

import "math"

// Mulberry32 is a small 32-bit seeded generator. The same seed always
// produces the same sequence, independent of platform.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 seeds a generator with the low 32 bits of seed
func NewMulberry32(seed int64) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Uint32 advances the generator and returns the next 32-bit output
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a uniform value in [0, 1)
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// UniformSource supplies uniform values in [0, 1)
type UniformSource interface {
	Float64() float64
}

// GaussianSampler turns a uniform source into standard normal deviates with the
// Box-Muller transform. Deviates come in pairs; the sine branch is cached for the next call.
type GaussianSampler struct {
	src      UniformSource
	spare    float64
	hasSpare bool
}

// NewGaussianSampler wraps a uniform source
func NewGaussianSampler(src UniformSource) *GaussianSampler {
	return &GaussianSampler{src: src}
}

// Next returns the next standard normal deviate
func (g *GaussianSampler) Next() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}

	var u, v float64
	for {
		u = g.src.Float64()
		v = g.src.Float64()
		// log(0) is undefined; redraw both
		if u != 0 && v != 0 {
			break
		}
	}

	r := math.Sqrt(-2 * math.Log(u))
	theta := 2 * math.Pi * v
	g.spare = r * math.Sin(theta)
	g.hasSpare = true
	return r * math.Cos(theta)
}

// Sample returns n deviates
func (g *GaussianSampler) Sample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}
