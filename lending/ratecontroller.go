package lending

import (
	"fmt"
	"math"
)

// Regime tells on which side of the target utilization the pool is.
type Regime int

// The two regimes of the rate law.
const (
	BelowTarget Regime = iota
	AboveTarget
)

func (r Regime) String() string {
	if r == AboveTarget {
		return "AboveTarget"
	}

	return "BelowTarget"
}

// A RateController computes the interest rate of a pool from its utilization.
//
// Above the target utilization the rate rises along
//
//	r0 - 1/(dt + 1/rmax) + rmax
//
// and at or below the target it decays along
//
//	r0 + 1/(dt + 1/r0) - r0
//
// where r0 is the rate at the last crossing of the target and dt is the time
// since that crossing. Both curves start at r0 when dt is 0, so the rate is
// continuous at every crossing.
type RateController struct {
	TargetUtilization float64
	MaximumRate       float64
}

// NewRateController creates a RateController.
func NewRateController(
	targetUtilization, maximumRate float64,
) RateController {
	return RateController{
		TargetUtilization: targetUtilization,
		MaximumRate:       maximumRate,
	}
}

// Regime returns the regime that the utilization falls into.
func (c RateController) Regime(utilization float64) Regime {
	if utilization > c.TargetUtilization {
		return AboveTarget
	}

	return BelowTarget
}

// NextRate evaluates the rate law for the pool at the given time. It does
// not change the pool.
func (c RateController) NextRate(p *Pool, now float64) (float64, error) {
	dt := now - p.timeOfLastCross
	r0 := p.rateAtLastCross

	var rate float64

	switch c.Regime(p.Utilization()) {
	case AboveTarget:
		rmax := c.MaximumRate
		rate = r0 - 1.0/(dt+1.0/rmax) + rmax
	case BelowTarget:
		if r0 <= 0 {
			return 0, fmt.Errorf("%w: anchor rate %g at %g",
				ErrRateSingularity, r0, p.timeOfLastCross)
		}

		rate = r0 + 1.0/(dt+1.0/r0) - r0
	}

	if math.IsNaN(rate) {
		return 0, fmt.Errorf("%w: dt %g, anchor %g", ErrRateNaN, dt, r0)
	}

	return rate, nil
}

// Crossed tells if the utilization has moved to the other regime since the
// previous tick.
func (c RateController) Crossed(p *Pool) bool {
	return c.Regime(p.Utilization()) != c.Regime(p.previousUtilization)
}

// Update closes a tick for the pool. It publishes the rate for the next tick,
// moves the crossing bookmark to the new rate if the utilization crossed the
// target, and remembers the utilization for the next crossing check. It
// returns true if a crossing happened.
func (c RateController) Update(p *Pool, now float64) (bool, error) {
	rate, err := c.NextRate(p, now)
	if err != nil {
		return false, err
	}

	p.currentRate = rate

	crossed := c.Crossed(p)
	if crossed {
		p.timeOfLastCross = now
		p.rateAtLastCross = p.currentRate
	}

	p.previousUtilization = p.Utilization()

	return crossed, nil
}
