package lending

import (
	"log"

	"github.com/shopspring/decimal"
)

// A Pool aggregates the funds of all the actors. It accepts or rejects the
// actions the actors propose so that the borrowed amount never exceeds the
// supplied amount.
//
// The totals are kept as decimals, so that moving the same amounts in and out
// brings them back to exactly zero.
//
// The pool also carries the published interest rate and the bookmark of the
// last utilization crossing, which the RateController reads and writes.
type Pool struct {
	supplied decimal.Decimal
	borrowed decimal.Decimal

	currentRate         float64
	rateAtLastCross     float64
	timeOfLastCross     float64
	previousUtilization float64
}

// PoolSnapshot is a copy of the state of a pool.
type PoolSnapshot struct {
	Supplied            float64
	Borrowed            float64
	CurrentRate         float64
	RateAtLastCross     float64
	TimeOfLastCross     float64
	PreviousUtilization float64
}

// NewPool creates an empty pool that publishes the initial rate. The initial
// rate is also the anchor of the rate law until the first crossing.
func NewPool(initialRate float64) *Pool {
	p := &Pool{
		currentRate:     initialRate,
		rateAtLastCross: initialRate,
	}
	p.previousUtilization = p.Utilization()

	return p
}

// ApplyAction checks if the action is feasible and, if it is, updates the
// totals. Rejected actions leave the pool untouched.
func (p *Pool) ApplyAction(action Action) bool {
	if action.Kind == NoOp {
		return true
	}

	amount := decimal.NewFromFloat(action.Amount)

	switch action.Kind {
	case Supply:
		p.supplied = p.supplied.Add(amount)
		return true
	case Withdraw:
		if p.supplied.Sub(amount).LessThan(p.borrowed) {
			return false
		}

		p.supplied = p.supplied.Sub(amount)

		return true
	case Borrow:
		if p.borrowed.Add(amount).GreaterThan(p.supplied) {
			return false
		}

		p.borrowed = p.borrowed.Add(amount)

		return true
	case Repay:
		p.borrowed = p.borrowed.Sub(amount)
		return true
	default:
		log.Panicf("unknown action kind %s", action.Kind)
	}

	return false
}

// Utilization returns the ratio of the borrowed amount to the supplied
// amount. An empty pool has a utilization of 0.
func (p *Pool) Utilization() float64 {
	if p.supplied.IsZero() {
		return 0.0
	}

	return p.Borrowed() / p.Supplied()
}

// Supplied returns the total amount supplied to the pool.
func (p *Pool) Supplied() float64 {
	return p.supplied.InexactFloat64()
}

// Borrowed returns the total amount borrowed from the pool.
func (p *Pool) Borrowed() float64 {
	return p.borrowed.InexactFloat64()
}

// CurrentRate returns the interest rate published for the current tick.
func (p *Pool) CurrentRate() float64 {
	return p.currentRate
}

// Snapshot returns a copy of the state of the pool.
func (p *Pool) Snapshot() PoolSnapshot {
	return PoolSnapshot{
		Supplied:            p.Supplied(),
		Borrowed:            p.Borrowed(),
		CurrentRate:         p.currentRate,
		RateAtLastCross:     p.rateAtLastCross,
		TimeOfLastCross:     p.timeOfLastCross,
		PreviousUtilization: p.previousUtilization,
	}
}
