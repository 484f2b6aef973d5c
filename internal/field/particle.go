package field

import "math/rand"

// Category selects the particle's palette entry. It is fixed at creation.
type Category int

const (
	Neutral Category = iota
	Accent
)

func (c Category) String() string {
	if c == Accent {
		return "accent"
	}
	return "neutral"
}

// Particle is a single node of the constellation.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Category Category
}

// newParticle places a particle uniformly inside w x h with a small random
// drift.
func newParticle(rng *rand.Rand, w, h, accentChance float64) Particle {
	p := Particle{
		X:      rng.Float64() * w,
		Y:      rng.Float64() * h,
		VX:     (rng.Float64() - 0.5) * 0.35,
		VY:     (rng.Float64() - 0.5) * 0.35,
		Radius: rng.Float64()*2.5 + 1,
	}
	if rng.Float64() < accentChance {
		p.Category = Accent
	}
	return p
}
