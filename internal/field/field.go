package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/iburimskiy/constellation/internal/config"
)

// Surface is the drawing target of a Field. Coordinates are logical units;
// the surface applies its own device pixel ratio.
type Surface interface {
	Resize(width, height, dpr float64)
	Clear()
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	FillCircle(cx, cy, r float64, clr color.Color)
	StrokeCircle(cx, cy, r, width float64, clr color.Color)
}

// OffscreenPointer is where the pointer sits while the cursor is outside the
// hero. It is far enough away that no particle reacts to it.
const OffscreenPointer = -1000.0

const ringThreshold = 0.3

type Config struct {
	Count         int
	ConnectDist   float64
	PointerRadius float64
	PointerForce  float64
	MaxDPR        float64
	Damping       float64
	WrapMargin    float64
	AccentChance  float64
}

func DefaultConfig() Config {
	return Config{
		Count:         config.NodeCount,
		ConnectDist:   config.ConnectDist,
		PointerRadius: config.MouseRadius,
		PointerForce:  config.MouseStrength,
		MaxDPR:        config.MaxDPR,
		Damping:       config.Damping,
		WrapMargin:    config.WrapMargin,
		AccentChance:  config.AccentChance,
	}
}

type Palette struct {
	Accent  color.NRGBA
	Neutral color.NRGBA
	Link    color.NRGBA
}

func DefaultPalette() Palette {
	return Palette{
		Accent:  color.NRGBA{R: 214, G: 51, B: 108, A: 255},
		Neutral: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Link:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Field owns the particle set, the pointer and the surface. It is driven
// from a single goroutine and holds no locks.
type Field struct {
	cfg     Config
	palette Palette
	surface Surface
	rng     *rand.Rand

	particles     []Particle
	width, height float64
	dpr           float64
	pointerX      float64
	pointerY      float64
}

// New returns nil when there is no surface to draw on. All methods accept a
// nil receiver and do nothing.
func New(surface Surface, cfg Config, rng *rand.Rand) *Field {
	if surface == nil {
		return nil
	}
	return &Field{
		cfg:      cfg,
		palette:  DefaultPalette(),
		surface:  surface,
		rng:      rng,
		pointerX: OffscreenPointer,
		pointerY: OffscreenPointer,
		dpr:      1,
	}
}

// Init sizes the surface and replaces the whole particle set.
func (f *Field) Init(width, height, dpr float64) {
	if f == nil {
		return
	}
	f.Resize(width, height, dpr)
	f.particles = make([]Particle, f.cfg.Count)
	for i := range f.particles {
		f.particles[i] = newParticle(f.rng, f.width, f.height, f.cfg.AccentChance)
	}
}

// Resize follows the container size. Particles keep their state; the wrap
// rule brings strays back.
func (f *Field) Resize(width, height, dpr float64) {
	if f == nil {
		return
	}
	f.width = width
	f.height = height
	f.dpr = CapDPR(dpr, f.cfg.MaxDPR)
	f.surface.Resize(f.width, f.height, f.dpr)
}

// CapDPR treats a non-positive ratio as 1 and limits it to max.
func CapDPR(dpr, max float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	return math.Min(dpr, max)
}

func (f *Field) SetPointer(x, y float64) {
	if f == nil {
		return
	}
	f.pointerX, f.pointerY = x, y
}

func (f *Field) ClearPointer() {
	f.SetPointer(OffscreenPointer, OffscreenPointer)
}

func (f *Field) Pointer() (x, y float64) {
	if f == nil {
		return OffscreenPointer, OffscreenPointer
	}
	return f.pointerX, f.pointerY
}

func (f *Field) SetPalette(p Palette) {
	if f == nil {
		return
	}
	f.palette = p
}

func (f *Field) Size() (width, height, dpr float64) {
	if f == nil {
		return 0, 0, 0
	}
	return f.width, f.height, f.dpr
}

func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.particles)
}

// Particles returns a copy of the current particle set.
func (f *Field) Particles() []Particle {
	if f == nil {
		return nil
	}
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Update advances every particle by one frame.
func (f *Field) Update() {
	if f == nil {
		return
	}
	m := f.cfg.WrapMargin
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY

		dx := p.X - f.pointerX
		dy := p.Y - f.pointerY
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < f.cfg.PointerRadius && dist > 0 {
			force := (1 - dist/f.cfg.PointerRadius) * f.cfg.PointerForce
			p.VX += dx / dist * force
			p.VY += dy / dist * force
		}

		p.VX *= f.cfg.Damping
		p.VY *= f.cfg.Damping

		if p.X < -m {
			p.X = f.width + m
		}
		if p.X > f.width+m {
			p.X = -m
		}
		if p.Y < -m {
			p.Y = f.height + m
		}
		if p.Y > f.height+m {
			p.Y = -m
		}
	}
}

// Render draws connections first so nodes sit on top of them.
func (f *Field) Render() {
	if f == nil {
		return
	}
	f.surface.Clear()

	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			a, b := &f.particles[i], &f.particles[j]
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			if alpha, ok := f.linkAlpha(dist); ok {
				f.surface.StrokeLine(a.X, a.Y, b.X, b.Y, 0.5, withAlpha(f.palette.Link, alpha))
			}
		}
	}

	for i := range f.particles {
		p := &f.particles[i]
		glow := f.Glow(p.X, p.Y)
		base := f.palette.Neutral
		alpha := 0.3 + glow*0.5
		if p.Category == Accent {
			base = f.palette.Accent
			alpha += 0.15
		}
		f.surface.FillCircle(p.X, p.Y, p.Radius+glow*2, withAlpha(base, alpha))

		if hasRing(glow) {
			ring := glow * 0.15
			if p.Category == Accent {
				ring = glow * 0.25
			}
			f.surface.StrokeCircle(p.X, p.Y, p.Radius+glow*6, 1, withAlpha(base, ring))
		}
	}
}

// Glow is 1 at the pointer and falls linearly to 0 at the pointer radius.
func (f *Field) Glow(x, y float64) float64 {
	if f == nil {
		return 0
	}
	dist := math.Hypot(x-f.pointerX, y-f.pointerY)
	if dist >= f.cfg.PointerRadius {
		return 0
	}
	return 1 - dist/f.cfg.PointerRadius
}

// hasRing reports whether the proximity halo is drawn for a glow value.
func hasRing(glow float64) bool { return glow > ringThreshold }

func (f *Field) linkAlpha(dist float64) (float64, bool) {
	if dist >= f.cfg.ConnectDist {
		return 0, false
	}
	return (1 - dist/f.cfg.ConnectDist) * 0.12, true
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(math.Round(alpha * 255))
	return c
}
