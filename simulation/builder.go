package simulation

import (
	"fmt"
	"math/rand"

	"github.com/rs/xid"
	"github.com/sarchlab/lendsim/config"
	"github.com/sarchlab/lendsim/lending"
	"github.com/sarchlab/lendsim/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	cfg    config.Config
	seed   int64
	rng    lending.RandSource
	engine sim.Engine
}

// MakeBuilder creates a new builder with the default configuration and seed
// 1.
func MakeBuilder() Builder {
	return Builder{
		cfg:  config.Default(),
		seed: 1,
	}
}

// WithConfig sets the configuration of the run.
func (b Builder) WithConfig(cfg config.Config) Builder {
	b.cfg = cfg
	return b
}

// WithSeed sets the seed of the default random source.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithRandSource replaces the seeded random source. All the rolls of all the
// actors are drawn from it, in actor order.
func (b Builder) WithRandSource(rng lending.RandSource) Builder {
	b.rng = rng
	return b
}

// WithEngine sets the engine that drives the ticks. The engine must process
// events one after another.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// Build validates the configuration and builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	err := b.cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("build simulation: %w", err)
	}

	s := &Simulation{
		id:  xid.New().String(),
		cfg: b.cfg,
		controller: lending.NewRateController(
			b.cfg.TargetUtilization,
			b.cfg.MaximumInterestRate,
		),
		freq: sim.FreqFromPeriod(sim.VTimeInYear(b.cfg.Tick)),
		pool: lending.NewPool(b.cfg.InitialInterestRate),
	}

	s.rng = b.rng
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(b.seed))
	}

	s.engine = b.engine
	if s.engine == nil {
		s.engine = sim.NewSerialEngine()
	}

	s.actors = make([]*lending.Actor, b.cfg.NumberOfActors)
	for i := range s.actors {
		s.actors[i] = lending.NewActor(b.cfg.InitialCash)
	}

	return s, nil
}
