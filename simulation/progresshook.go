package simulation

import (
	"math"

	"github.com/sarchlab/lendsim/sim"
	log "github.com/sirupsen/logrus"
)

// A ProgressHook logs the state of the pool once per simulated year.
type ProgressHook struct {
	logger       *log.Logger
	freq         sim.Freq
	ticksPerYear uint64
}

// NewProgressHook creates a ProgressHook for ticks of the given frequency.
func NewProgressHook(logger *log.Logger, freq sim.Freq) *ProgressHook {
	ticksPerYear := uint64(math.Round(float64(freq)))
	if ticksPerYear == 0 {
		ticksPerYear = 1
	}

	return &ProgressHook{
		logger:       logger,
		freq:         freq,
		ticksPerYear: ticksPerYear,
	}
}

// Func logs when a tick completes a simulated year.
func (h *ProgressHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosTickEnd {
		return
	}

	record, ok := ctx.Item.(Record)
	if !ok {
		return
	}

	end := sim.VTimeInYear(record.Time) + h.freq.Period()
	ticks := h.freq.Cycle(end)

	if ticks%h.ticksPerYear != 0 {
		return
	}

	h.logger.WithFields(log.Fields{
		"year":        ticks / h.ticksPerYear,
		"rate":        record.Rate,
		"supplied":    record.Supplied,
		"borrowed":    record.Borrowed,
		"utilization": record.Utilization(),
	}).Info("simulated year completed")
}
