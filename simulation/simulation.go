package simulation

import (
	"fmt"
	"math"

	"github.com/sarchlab/lendsim/config"
	"github.com/sarchlab/lendsim/lending"
	"github.com/sarchlab/lendsim/sim"
	log "github.com/sirupsen/logrus"
)

// HookPosTickEnd is the hook position triggered at the end of every tick. The
// item is the Record of the tick and the detail is a TickDetail.
var HookPosTickEnd = &sim.HookPos{Name: "TickEnd"}

// HookPosActionRejected is triggered when the pool rejects an action. The
// item is the lending.Action and the detail is the index of the actor.
var HookPosActionRejected = &sim.HookPos{Name: "ActionRejected"}

// TickDetail tells what happened to the rate at the end of a tick.
type TickDetail struct {
	NextRate float64
	Crossed  bool
}

// A Simulation owns a pool and its actors and advances them tick by tick.
type Simulation struct {
	sim.HookableBase

	id         string
	cfg        config.Config
	engine     sim.Engine
	freq       sim.Freq
	rng        lending.RandSource
	controller lending.RateController

	pool    *lending.Pool
	actors  []*lending.Actor
	records []Record

	currentTime float64
	ticksLeft   uint64
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Config returns the configuration of the run.
func (s *Simulation) Config() config.Config {
	return s.cfg
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// Freq returns the number of ticks per simulated year.
func (s *Simulation) Freq() sim.Freq {
	return s.freq
}

// CurrentTime returns the start time of the next tick, in years.
func (s *Simulation) CurrentTime() float64 {
	return s.currentTime
}

// Pool returns a copy of the state of the pool.
func (s *Simulation) Pool() lending.PoolSnapshot {
	return s.pool.Snapshot()
}

// Actors returns copies of the actors, in the order they act.
func (s *Simulation) Actors() []lending.Actor {
	actors := make([]lending.Actor, len(s.actors))
	for i, a := range s.actors {
		actors[i] = *a
	}

	return actors
}

// Records returns the records of all the ticks so far, in tick order. The
// caller must not modify the returned slice.
func (s *Simulation) Records() []Record {
	return s.records
}

// Step runs one tick. Every actor decides on the rate published for this tick
// and the pool applies the actions in actor order. Then the tick is recorded
// and the rate for the next tick is computed.
func (s *Simulation) Step() error {
	rates := lending.RateView{
		Initial: s.cfg.InitialInterestRate,
		Current: s.pool.CurrentRate(),
		Maximum: s.cfg.MaximumInterestRate,
	}

	for i, actor := range s.actors {
		action := actor.Decide(rates, s.rng)

		if s.pool.ApplyAction(action) {
			actor.Commit(action)
			continue
		}

		if s.NumHooks() > 0 {
			s.InvokeHook(sim.HookCtx{
				Domain: s,
				Pos:    HookPosActionRejected,
				Item:   action,
				Detail: i,
			})
		}
	}

	record := Record{
		Time:     s.currentTime,
		Rate:     s.pool.CurrentRate(),
		Supplied: s.pool.Supplied(),
		Borrowed: s.pool.Borrowed(),
	}
	s.records = append(s.records, record)

	crossed, err := s.controller.Update(s.pool, s.currentTime)
	if err != nil {
		return fmt.Errorf("tick at %g: %w", s.currentTime, err)
	}

	if crossed && log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"sim_time":    s.currentTime,
			"utilization": record.Utilization(),
			"rate":        s.pool.CurrentRate(),
			"regime":      s.controller.Regime(record.Utilization()),
		}).Debug("utilization crossed target")
	}

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosTickEnd,
		Item:   record,
		Detail: TickDetail{NextRate: s.pool.CurrentRate(), Crossed: crossed},
	})

	s.currentTime += s.cfg.Tick

	return nil
}

// RunFor runs floor(years / tick) ticks through the engine. It stops at the
// first error.
func (s *Simulation) RunFor(years float64) error {
	if math.IsNaN(years) || math.IsInf(years, 0) {
		return fmt.Errorf("cannot run for %g years", years)
	}

	if years <= 0 {
		return nil
	}

	ticks := uint64(math.Floor(years / s.cfg.Tick))
	if ticks == 0 {
		return nil
	}

	log.WithFields(log.Fields{
		"simulation": s.id,
		"years":      years,
		"ticks":      ticks,
		"actors":     len(s.actors),
	}).Info("simulation started")

	s.ticksLeft = ticks
	s.scheduleTick()

	err := s.engine.Run()
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"simulation": s.id,
		"sim_time":   s.currentTime,
		"rate":       s.pool.CurrentRate(),
		"records":    len(s.records),
	}).Info("simulation finished")

	return nil
}

func (s *Simulation) scheduleTick() {
	s.engine.Schedule(sim.MakeTickEvent(s, sim.VTimeInYear(s.currentTime)))
}

// Handle runs a tick and schedules the next one while ticks are left.
func (s *Simulation) Handle(e sim.Event) error {
	err := s.Step()
	if err != nil {
		s.ticksLeft = 0
		return err
	}

	s.ticksLeft--
	if s.ticksLeft > 0 {
		s.scheduleTick()
	}

	return nil
}

// Terminate tells the engine that the simulation is over, so that the
// registered end handlers, such as recorders, can finish their work.
func (s *Simulation) Terminate() {
	s.engine.Finished()
}
