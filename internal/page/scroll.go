package page

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

const (
	scrollFPS       = 60
	scrollFrequency = 8.0
	scrollDamping   = 1.0
	scrollSnap      = 0.5
)

// Scroller owns the document scroll offset. Jumps apply at once; ScrollTo
// moves towards the target on a critically damped spring over the following
// ticks. The zero value has no spring and lands on the target in one tick.
type Scroller struct {
	spring    harmonica.Spring
	pos       float64
	vel       float64
	target    float64
	max       float64
	animating bool
}

func NewScroller() Scroller {
	return Scroller{spring: harmonica.NewSpring(harmonica.FPS(scrollFPS), scrollFrequency, scrollDamping)}
}

func (s *Scroller) Pos() float64    { return s.pos }
func (s *Scroller) Animating() bool { return s.animating }

// SetMax updates the scroll range and clamps the current position.
func (s *Scroller) SetMax(limit float64) {
	s.max = math.Max(0, limit)
	s.pos = clamp(s.pos, 0, s.max)
	s.target = clamp(s.target, 0, s.max)
}

// ScrollBy moves immediately and cancels a running smooth scroll.
func (s *Scroller) ScrollBy(delta float64) {
	s.animating = false
	s.vel = 0
	s.pos = clamp(s.pos+delta, 0, s.max)
	s.target = s.pos
}

func (s *Scroller) Jump(pos float64) {
	s.ScrollBy(pos - s.pos)
}

// ScrollTo starts a smooth scroll to pos.
func (s *Scroller) ScrollTo(pos float64) {
	s.target = clamp(pos, 0, s.max)
	s.animating = s.target != s.pos
}

// Tick advances a smooth scroll by one frame and reports whether the
// position moved.
func (s *Scroller) Tick() bool {
	if !s.animating {
		return false
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	s.pos = clamp(s.pos, 0, s.max)
	if math.Abs(s.target-s.pos) < scrollSnap && math.Abs(s.vel) < scrollSnap {
		s.pos = s.target
		s.vel = 0
		s.animating = false
	}
	return true
}

// ResolveAnchor maps an in-page href to the top of its section. Portal
// links and unknown targets are left to the default behaviour.
func ResolveAnchor(href string, l *Layout) (float64, bool) {
	if !strings.HasPrefix(href, "#") || strings.HasPrefix(href, "#/portal") {
		return 0, false
	}
	s, ok := l.Find(strings.TrimPrefix(href, "#"))
	if !ok {
		return 0, false
	}
	return s.Rect.Y, true
}
