package page

const (
	revealThreshold    = 0.08
	revealBottomMargin = 50
)

// Revealer marks reveal sections visible once enough of them has scrolled
// into view. A revealed section stays revealed.
type Revealer struct {
	revealed map[string]bool
}

func NewRevealer() *Revealer {
	return &Revealer{revealed: make(map[string]bool)}
}

// Observe checks the reveal sections against the viewport and returns the
// ids revealed by this call.
func (r *Revealer) Observe(l *Layout, v Viewport) []string {
	var fresh []string
	top, bottom := v.Top(), v.Bottom()-revealBottomMargin
	for _, s := range l.Sections {
		if s.Kind != KindReveal || r.revealed[s.ID] {
			continue
		}
		if VisibleRatio(s.Rect, top, bottom) >= revealThreshold {
			r.revealed[s.ID] = true
			fresh = append(fresh, s.ID)
		}
	}
	return fresh
}

func (r *Revealer) Revealed(id string) bool { return r.revealed[id] }
