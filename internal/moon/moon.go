// Package moon computes the phase of the moon for the clock widget.
package moon

import (
	"math"
	"time"
)

// SynodicMonth is the mean length of a lunation in days.
const SynodicMonth = 29.530588853

// reference new moon
var epoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

var names = [...]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

type Phase struct {
	Age          float64 // days since new moon
	Fraction     float64 // position in the lunation, [0, 1)
	Illumination float64 // lit share of the disc, [0, 1]
	Name         string
}

func PhaseAt(t time.Time) Phase {
	days := t.Sub(epoch).Hours() / 24
	age := math.Mod(days, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}
	frac := age / SynodicMonth
	return Phase{
		Age:          age,
		Fraction:     frac,
		Illumination: (1 - math.Cos(2*math.Pi*frac)) / 2,
		Name:         names[int(math.Floor(frac*8+0.5))%8],
	}
}

// Waxing reports whether the lit side is growing.
func (p Phase) Waxing() bool { return p.Fraction < 0.5 }
