package lending

import "fmt"

// ActionKind tells what an actor wants to do with the pool in a tick.
type ActionKind int

// All the kinds of actions an actor can propose.
const (
	NoOp ActionKind = iota
	Supply
	Withdraw
	Borrow
	Repay
)

func (k ActionKind) String() string {
	switch k {
	case NoOp:
		return "NoOp"
	case Supply:
		return "Supply"
	case Withdraw:
		return "Withdraw"
	case Borrow:
		return "Borrow"
	case Repay:
		return "Repay"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// An Action is proposed by an actor and consumed by the pool within the same
// tick.
type Action struct {
	Kind   ActionKind
	Amount float64
}

func (a Action) String() string {
	if a.Kind == NoOp {
		return a.Kind.String()
	}

	return fmt.Sprintf("%s %g", a.Kind, a.Amount)
}
