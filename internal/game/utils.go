package game

import (
	"fmt"
	"time"

	"github.com/iburimskiy/constellation/internal/moon"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// moonGlyph draws the phase as a tiny ASCII disc for the debug font.
func moonGlyph(p moon.Phase) string {
	switch {
	case p.Illumination < 0.05:
		return "( )"
	case p.Illumination > 0.95:
		return "(O)"
	case p.Waxing():
		return "( D"
	default:
		return "C )"
	}
}
