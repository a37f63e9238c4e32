// Package ratepath draws Monte Carlo paths of the interest rate when the
// utilization flips between the two regimes at random.
package ratepath

import (
	"fmt"
	"math"

	"github.com/sarchlab/lendsim/config"
	"github.com/sarchlab/lendsim/lending"
)

// A Generator describes how the paths are sampled. The path starts above the
// target at InitialRate. At every point the regime flips with
// FlipProbability, and the rate is re-anchored at the rate of that point.
type Generator struct {
	Points          int
	InitialRate     float64
	FlipProbability float64
	Gamma           float64
}

// NewGenerator creates a generator that samples points evenly on one year. On
// average, the regime flips 30 times a year. Gamma is the inverse of the
// initial rate.
func NewGenerator(points int, initialRate float64) Generator {
	g := Generator{
		Points:      points,
		InitialRate: initialRate,
		Gamma:       1 / initialRate,
	}

	if points > 0 {
		g.FlipProbability = math.Min(1, 30/float64(points))
	}

	return g
}

// Validate checks if paths can be drawn with the generator.
func (g Generator) Validate() error {
	switch {
	case g.Points < 2:
		return fmt.Errorf("%w: %d points", config.ErrInvalidConfig, g.Points)
	case !(g.InitialRate > 0) || math.IsInf(g.InitialRate, 0):
		return fmt.Errorf("%w: initial rate %g",
			config.ErrInvalidConfig, g.InitialRate)
	case !(g.Gamma > 0) || math.IsInf(g.Gamma, 0):
		return fmt.Errorf("%w: gamma %g", config.ErrInvalidConfig, g.Gamma)
	case !(g.FlipProbability >= 0 && g.FlipProbability <= 1):
		return fmt.Errorf("%w: flip probability %g",
			config.ErrInvalidConfig, g.FlipProbability)
	}

	return nil
}

// Times returns the sample times of a path, in years.
func (g Generator) Times() []float64 {
	times := make([]float64, g.Points)

	last := float64(g.Points - 1)
	for i := range times {
		times[i] = float64(i) / last
	}

	return times
}

// Path draws one path. It rolls the random source once per point.
func (g Generator) Path(rng lending.RandSource) ([]float64, error) {
	err := g.Validate()
	if err != nil {
		return nil, err
	}

	times := g.Times()
	path := make([]float64, len(times))

	above := true
	anchorTime := times[0]
	anchorRate := g.InitialRate

	for i, t := range times {
		dt := t - anchorTime
		r0 := anchorRate

		var rate float64
		if above {
			rate = r0 - 1/(dt*g.Gamma+1/r0) + r0
		} else {
			rate = r0 + 1/(dt*g.Gamma+1/r0) - r0
		}

		if math.IsNaN(rate) {
			return nil, fmt.Errorf("%w: point %d, anchor %g",
				lending.ErrRateNaN, i, r0)
		}

		path[i] = rate

		if rng.Float64() < g.FlipProbability {
			above = !above
			anchorRate = rate
			anchorTime = t
		}
	}

	return path, nil
}

// Paths draws n independent paths from the same random source.
func (g Generator) Paths(n int, rng lending.RandSource) ([][]float64, error) {
	paths := make([][]float64, 0, n)

	for i := 0; i < n; i++ {
		path, err := g.Path(rng)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i+1, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// Entry is a point of a path in long format. Paths are numbered from 1.
type Entry struct {
	Time float64
	Path int
	Rate float64
}

// Melt turns paths sampled at the given times into long format, path by path.
func Melt(times []float64, paths [][]float64) []Entry {
	entries := make([]Entry, 0, len(times)*len(paths))

	for p, path := range paths {
		for i, rate := range path {
			entries = append(entries, Entry{
				Time: times[i],
				Path: p + 1,
				Rate: rate,
			})
		}
	}

	return entries
}
