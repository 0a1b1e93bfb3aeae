package game

import (
	"math"
	"math/rand/v2"
)

// Particle is a drifting circle. R is fixed at seed time.
type Particle struct {
	X, Y   float64
	R      float64
	DX, DY float64
}

// Step advances the particle by one frame and reflects its velocity when the
// new position lies outside [0, w]x[0, h]. The position is not clamped, so a
// particle may overshoot for one more frame before turning back.
func (p *Particle) Step(w, h float64) {
	p.X += p.DX
	p.Y += p.DY

	if p.X < 0 || p.X > w {
		p.DX = -p.DX
	}
	if p.Y < 0 || p.Y > h {
		p.DY = -p.DY
	}
}

// FieldParams controls seeding.
type FieldParams struct {
	Density   float64
	RadiusMin float64
	RadiusMax float64
	Speed     float64
}

// usable reports whether every parameter is finite and the radius range is
// non-empty. Unusable params are replaced by the defaults in Init.
func (p FieldParams) usable() bool {
	for _, v := range []float64{p.Density, p.RadiusMin, p.RadiusMax, p.Speed} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return p.RadiusMin < p.RadiusMax
}

// Field is the fixed set of particles tied to one surface.
type Field struct {
	Particles []Particle
}

// MaxParticles caps a single field.
const MaxParticles = 1 << 20

// ShapeCount returns floor(w*h*density), capped at MaxParticles, or 0 for
// degenerate input.
func ShapeCount(w, h int, density float64) int {
	if w <= 0 || h <= 0 || !(density > 0) {
		return 0
	}
	n := math.Floor(float64(w) * float64(h) * density)
	if n > MaxParticles {
		return MaxParticles
	}
	return int(n)
}

// Seed draws ShapeCount particles uniformly over the w x h area. The count is
// a snapshot: later resizes never reseed the field.
func Seed(w, h int, p FieldParams, rng *rand.Rand) *Field {
	n := ShapeCount(w, h, p.Density)
	f := &Field{Particles: make([]Particle, n)}
	span := p.RadiusMax - p.RadiusMin
	for i := range f.Particles {
		f.Particles[i] = Particle{
			X:  rng.Float64() * float64(w),
			Y:  rng.Float64() * float64(h),
			R:  p.RadiusMin + rng.Float64()*span,
			DX: (rng.Float64() - 0.5) * 2 * p.Speed,
			DY: (rng.Float64() - 0.5) * 2 * p.Speed,
		}
	}
	return f
}

// Len returns the number of particles.
func (f *Field) Len() int { return len(f.Particles) }

// Step advances every particle against the given bounds.
func (f *Field) Step(w, h int) {
	for i := range f.Particles {
		f.Particles[i].Step(float64(w), float64(h))
	}
}
