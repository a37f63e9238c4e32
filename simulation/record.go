package simulation

// A Record is the snapshot of the pool taken at the end of a tick. Rate is
// the rate that was published during the tick.
type Record struct {
	Time     float64
	Rate     float64
	Supplied float64
	Borrowed float64
}

// Utilization returns the ratio of the borrowed amount to the supplied amount,
// or 0 if nothing is supplied.
func (r Record) Utilization() float64 {
	if r.Supplied == 0 {
		return 0
	}

	return r.Borrowed / r.Supplied
}

// RecordEntry is the tabular form of a Record.
type RecordEntry struct {
	Times       float64
	Rates       float64
	Supplies    float64
	Borrows     float64
	Utilization float64
}

// Entry converts the record into its tabular form.
func (r Record) Entry() RecordEntry {
	return RecordEntry{
		Times:       r.Time,
		Rates:       r.Rate,
		Supplies:    r.Supplied,
		Borrows:     r.Borrowed,
		Utilization: r.Utilization(),
	}
}
