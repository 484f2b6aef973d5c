package page

import "math"

// ReadingProgress is the percentage of the chapter read, counting from the
// moment its top enters the bottom of the window until its bottom leaves the
// top.
func ReadingProgress(contentTop, contentHeight, scrollY, windowHeight float64) float64 {
	total := contentHeight + windowHeight
	if total <= 0 {
		return 0
	}
	return clamp((scrollY-contentTop+windowHeight)/total*100, 0, 100)
}

// Parallax offsets the hero cover and text while the hero is near the top
// of the page. Past that point the last offsets are kept.
type Parallax struct {
	Cover float64
	Text  float64
}

const (
	parallaxRange = 1.2
	coverShift    = 40
	textShift     = 20
)

// Update returns whether the offsets changed.
func (p *Parallax) Update(scrollY, viewportHeight float64) bool {
	if viewportHeight <= 0 || scrollY >= viewportHeight*parallaxRange {
		return false
	}
	ratio := scrollY / viewportHeight
	p.Cover = ratio * coverShift
	p.Text = ratio * textShift
	return true
}

// RailWheel routes a wheel event over the sections rail. A mostly vertical
// gesture scrolls the page by dy; anything else stays with the rail.
func RailWheel(dx, dy float64) (pageDelta float64, handled bool) {
	if math.Abs(dy) > math.Abs(dx) {
		return dy, true
	}
	return 0, false
}
