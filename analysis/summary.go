// Package analysis summarizes the record stream of a lending simulation.
package analysis

import (
	"math"

	"github.com/sarchlab/lendsim/simulation"
	log "github.com/sirupsen/logrus"
)

// Summary describes a whole record stream.
type Summary struct {
	Ticks               int
	Crossings           int
	FractionAboveTarget float64
	MeanUtilization     float64
	MinRate             float64
	MaxRate             float64
	FinalRate           float64
}

// Summarize computes the summary of records that are in tick order. A
// crossing is counted whenever the utilization of a tick falls into another
// regime than the tick before it. The pool starts below the target.
func Summarize(records []simulation.Record, target float64) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	s := Summary{
		Ticks:   len(records),
		MinRate: math.Inf(1),
		MaxRate: math.Inf(-1),
	}

	prevAbove := false
	above := 0
	sumUtilization := 0.0

	for _, r := range records {
		u := r.Utilization()
		sumUtilization += u

		isAbove := u > target
		if isAbove {
			above++
		}

		if isAbove != prevAbove {
			s.Crossings++
		}

		prevAbove = isAbove

		s.MinRate = math.Min(s.MinRate, r.Rate)
		s.MaxRate = math.Max(s.MaxRate, r.Rate)
	}

	s.FractionAboveTarget = float64(above) / float64(len(records))
	s.MeanUtilization = sumUtilization / float64(len(records))
	s.FinalRate = records[len(records)-1].Rate

	return s
}

// Fields returns the summary as logging fields.
func (s Summary) Fields() log.Fields {
	return log.Fields{
		"ticks":                 s.Ticks,
		"crossings":             s.Crossings,
		"fraction_above_target": s.FractionAboveTarget,
		"mean_utilization":      s.MeanUtilization,
		"min_rate":              s.MinRate,
		"max_rate":              s.MaxRate,
		"final_rate":            s.FinalRate,
	}
}
