package lending

import "log"

// Position tells where the funds of an actor are.
type Position int

// An actor is always in exactly one position.
const (
	Idle Position = iota
	Supplying
	Borrowing
)

func (p Position) String() string {
	switch p {
	case Supplying:
		return "Supplying"
	case Borrowing:
		return "Borrowing"
	default:
		return "Idle"
	}
}

// An Actor is an independent participant of the pool. It either holds cash,
// supplies all of it, or borrows against all of it. It never adjusts a
// position partially.
type Actor struct {
	cash     float64
	supplied float64
	borrowed float64
}

// NewActor creates an idle actor with the given cash.
func NewActor(cash float64) *Actor {
	return &Actor{cash: cash}
}

// Cash returns the cash that the actor holds.
func (a *Actor) Cash() float64 {
	return a.cash
}

// Supplied returns the amount the actor has supplied to the pool.
func (a *Actor) Supplied() float64 {
	return a.supplied
}

// Borrowed returns the amount the actor has borrowed from the pool.
func (a *Actor) Borrowed() float64 {
	return a.borrowed
}

// Position returns where the funds of the actor are.
func (a *Actor) Position() Position {
	switch {
	case a.supplied > 0:
		return Supplying
	case a.borrowed > 0:
		return Borrowing
	default:
		return Idle
	}
}

// Decide draws one roll from the random source and proposes an action.
//
// If the roll falls below the probability to supply, the actor stays if it is
// already supplying, repays if it is borrowing and supplies otherwise. If
// not, it stays if it is already borrowing, withdraws if it is supplying and
// borrows otherwise.
func (a *Actor) Decide(rates RateView, rng RandSource) Action {
	roll := rng.Float64()

	if roll < rates.ProbabilityToSupply() {
		switch {
		case a.supplied > 0:
			return Action{Kind: NoOp}
		case a.borrowed > 0:
			return Action{Kind: Repay, Amount: a.borrowed}
		default:
			return Action{Kind: Supply, Amount: a.cash}
		}
	}

	switch {
	case a.borrowed > 0:
		return Action{Kind: NoOp}
	case a.supplied > 0:
		return Action{Kind: Withdraw, Amount: a.supplied}
	default:
		return Action{Kind: Borrow, Amount: a.cash}
	}
}

// Commit mirrors an action that the pool has accepted. The source balance is
// zeroed and the destination is set to the proposed amount.
func (a *Actor) Commit(action Action) {
	switch action.Kind {
	case NoOp:
	case Supply:
		a.mustBeIn(Idle, action)
		a.supplied = action.Amount
		a.cash = 0
	case Withdraw:
		a.mustBeIn(Supplying, action)
		a.cash = action.Amount
		a.supplied = 0
	case Borrow:
		a.mustBeIn(Idle, action)
		a.borrowed = action.Amount
		a.cash = 0
	case Repay:
		a.mustBeIn(Borrowing, action)
		a.cash = action.Amount
		a.borrowed = 0
	default:
		log.Panicf("unknown action kind %s", action.Kind)
	}
}

func (a *Actor) mustBeIn(p Position, action Action) {
	if a.Position() != p {
		log.Panicf("cannot commit %s when %s", action, a.Position())
	}
}
