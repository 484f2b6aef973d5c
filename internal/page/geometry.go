package page

// Rect is an axis-aligned box in document coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Right() float64  { return r.X + r.W }

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport is the visible window onto the document.
type Viewport struct {
	ScrollY       float64
	Width, Height float64
}

func (v Viewport) Top() float64    { return v.ScrollY }
func (v Viewport) Bottom() float64 { return v.ScrollY + v.Height }

// ToScreen converts a document rectangle to window coordinates.
func (v Viewport) ToScreen(r Rect) Rect {
	r.Y -= v.ScrollY
	return r
}

// Intersects reports whether any part of r is inside the viewport. Edge
// contact counts, as with a zero-threshold intersection observer.
func Intersects(r Rect, v Viewport) bool {
	return r.Y <= v.Bottom() && r.Bottom() >= v.Top()
}

// VisibleRatio is the share of r's height inside the vertical band
// [top, bottom].
func VisibleRatio(r Rect, top, bottom float64) float64 {
	if r.H <= 0 {
		if r.Y >= top && r.Y <= bottom {
			return 1
		}
		return 0
	}
	lo := max(r.Y, top)
	hi := min(r.Bottom(), bottom)
	if hi <= lo {
		return 0
	}
	return (hi - lo) / r.H
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
