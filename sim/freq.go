package sim

import (
	"log"
	"math"
)

// Freq defines the type of frequency, in number of ticks per simulated year.
type Freq float64

// PerYear is the unit of frequency.
const PerYear Freq = 1

// FreqFromPeriod returns the frequency whose ticks are the given period apart.
func FreqFromPeriod(period VTimeInYear) Freq {
	if period <= 0 {
		log.Panic("period must be positive")
	}

	return Freq(1.0 / float64(period))
}

// Period returns the time between two consecutive ticks
func (f Freq) Period() VTimeInYear {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInYear(1.0 / f)
}

// Cycle converts a time to the number of cycles passed since time 0.
func (f Freq) Cycle(time VTimeInYear) uint64 {
	return uint64(math.Round(float64(time) * float64(f)))
}
