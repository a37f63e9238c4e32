package analysis

import (
	"math"

	"github.com/sarchlab/lendsim/datarecording"
	"github.com/sarchlab/lendsim/sim"
	"github.com/sarchlab/lendsim/simulation"
)

// PeriodTableName is the table that a PeriodAnalyzer writes into.
const PeriodTableName = "period_metrics"

// PeriodEntry is a single metric of a period.
type PeriodEntry struct {
	PeriodStart float64
	PeriodEnd   float64
	What        string
	Value       float64
	Unit        string
}

// PeriodAnalyzer is a hook that summarizes the ticks of every period, such as
// every simulated year, and writes the metrics into a DataRecorder.
type PeriodAnalyzer struct {
	recorder datarecording.DataRecorder
	period   float64
	tick     float64
	target   float64

	started     bool
	periodIndex float64
	lastEnd     float64

	ticks          int
	ticksAbove     int
	crossings      int
	sumUtilization float64
	sumRate        float64
}

// Func accumulates the record of a finished tick.
func (a *PeriodAnalyzer) Func(ctx sim.HookCtx) {
	if ctx.Pos != simulation.HookPosTickEnd {
		return
	}

	record, ok := ctx.Item.(simulation.Record)
	if !ok {
		return
	}

	index := math.Floor(record.Time / a.period)
	if a.started && index != a.periodIndex {
		a.summarize()
	}

	a.started = true
	a.periodIndex = index
	a.lastEnd = record.Time + a.tick

	u := record.Utilization()
	a.ticks++
	a.sumUtilization += u
	a.sumRate += record.Rate

	if u > a.target {
		a.ticksAbove++
	}

	detail, ok := ctx.Detail.(simulation.TickDetail)
	if ok && detail.Crossed {
		a.crossings++
	}
}

// Handle writes the last, possibly partial, period when the simulation ends.
func (a *PeriodAnalyzer) Handle(_ sim.VTimeInYear) {
	a.summarize()
	a.recorder.Flush()
}

// Attach registers the analyzer to a simulation.
func (a *PeriodAnalyzer) Attach(s *simulation.Simulation) {
	s.AcceptHook(a)
	s.GetEngine().RegisterSimulationEndHandler(a)
}

func (a *PeriodAnalyzer) summarize() {
	if a.ticks == 0 {
		return
	}

	start := a.periodIndex * a.period
	end := math.Min(start+a.period, a.lastEnd)
	n := float64(a.ticks)

	a.write(start, end, "mean_utilization", a.sumUtilization/n, "")
	a.write(start, end, "mean_rate", a.sumRate/n, "1/year")
	a.write(start, end, "time_above_target",
		float64(a.ticksAbove)*a.tick, "year")
	a.write(start, end, "crossings", float64(a.crossings), "count")

	a.resetPeriod()
}

func (a *PeriodAnalyzer) write(
	start, end float64,
	what string,
	value float64,
	unit string,
) {
	a.recorder.InsertData(PeriodTableName, PeriodEntry{
		PeriodStart: start,
		PeriodEnd:   end,
		What:        what,
		Value:       value,
		Unit:        unit,
	})
}

func (a *PeriodAnalyzer) resetPeriod() {
	a.ticks = 0
	a.ticksAbove = 0
	a.crossings = 0
	a.sumUtilization = 0
	a.sumRate = 0
}

// PeriodAnalyzerBuilder can build PeriodAnalyzers.
type PeriodAnalyzerBuilder struct {
	recorder datarecording.DataRecorder
	period   float64
	tick     float64
	target   float64
}

// MakePeriodAnalyzerBuilder returns a builder for yearly periods, with the
// default tick and target.
func MakePeriodAnalyzerBuilder() PeriodAnalyzerBuilder {
	return PeriodAnalyzerBuilder{
		period: 1,
		tick:   1.0 / 256,
		target: 0.8,
	}
}

// WithRecorder sets the recorder that receives the metrics.
func (b PeriodAnalyzerBuilder) WithRecorder(
	recorder datarecording.DataRecorder,
) PeriodAnalyzerBuilder {
	b.recorder = recorder
	return b
}

// WithPeriod sets the length of a period, in years.
func (b PeriodAnalyzerBuilder) WithPeriod(period float64) PeriodAnalyzerBuilder {
	b.period = period
	return b
}

// WithTick sets the length of a tick, in years.
func (b PeriodAnalyzerBuilder) WithTick(tick float64) PeriodAnalyzerBuilder {
	b.tick = tick
	return b
}

// WithTarget sets the target utilization.
func (b PeriodAnalyzerBuilder) WithTarget(target float64) PeriodAnalyzerBuilder {
	b.target = target
	return b
}

// Build creates the analyzer and the metric table in the recorder.
func (b PeriodAnalyzerBuilder) Build() *PeriodAnalyzer {
	if b.recorder == nil {
		panic("period analyzer requires a recorder")
	}

	if !(b.period > 0) || !(b.tick > 0) {
		panic("period and tick must be positive")
	}

	b.recorder.CreateTable(PeriodTableName, PeriodEntry{})

	return &PeriodAnalyzer{
		recorder: b.recorder,
		period:   b.period,
		tick:     b.tick,
		target:   b.target,
	}
}
