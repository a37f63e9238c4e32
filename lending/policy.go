package lending

// RandSource provides uniform random numbers in [0, 1). *rand.Rand satisfies
// it.
type RandSource interface {
	Float64() float64
}

// RateView is the read-only view of the rates that an actor decides on.
type RateView struct {
	Initial float64
	Current float64
	Maximum float64
}

// ProbabilityToSupply returns the probability that an actor wants to move
// funds into the pool. It is 0 at a zero rate, 0.5 at the initial rate and 1
// at the maximum rate, and linear in between.
func ProbabilityToSupply(initialRate, currentRate, maximumRate float64) float64 {
	if currentRate > initialRate {
		return 0.5*(currentRate-initialRate)/(maximumRate-initialRate) + 0.5
	}

	return 0.5 * currentRate / initialRate
}

// ProbabilityToSupply applies ProbabilityToSupply to the view.
func (v RateView) ProbabilityToSupply() float64 {
	return ProbabilityToSupply(v.Initial, v.Current, v.Maximum)
}
