// Package simulator wires the process table, diagnosis engine, and event
// scheduler into one run, owning the Config-to-Result boundary:
// construct collaborators, drive a loop, produce a result record.
package simulator

import (
	"fmt"

	"github.com/Lodek/vcube/pkg/config"
	"github.com/Lodek/vcube/pkg/randsrc"
	"github.com/Lodek/vcube/pkg/reporting"
	"github.com/Lodek/vcube/pkg/vcube/diagnosis"
	"github.com/Lodek/vcube/pkg/vcube/process"
	"github.com/Lodek/vcube/pkg/vcube/scheduler"
)

// Simulator owns one run's collaborators.
type Simulator struct {
	cfg       *config.SimulationConfig
	table     *process.Table
	scheduler *scheduler.Scheduler
	engine    *diagnosis.Engine
	result    *reporting.Result
	log       *reporting.Logger
	metrics   *PrometheusCollector
}

// WithMetrics attaches a Prometheus collector that is refreshed after
// every processed event. Optional: a Simulator with no collector runs
// identically, just without the observability surface.
func (s *Simulator) WithMetrics(c *PrometheusCollector) *Simulator {
	s.metrics = c
	return s
}

// New constructs a Simulator. cfg must already be validated.
func New(cfg config.SimulationConfig, log *reporting.Logger) (*Simulator, error) {
	rng, err := randsrc.New(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize random source: %w", err)
	}
	log.Info("simulation seeded", "seed", rng.Seed())

	table := process.NewTable(cfg.ProcessCount)
	result := &reporting.Result{}
	engine := diagnosis.NewEngine(table, rng, cfg.FalseNegativeProbability, log, result)

	return &Simulator{
		cfg:       &cfg,
		table:     table,
		scheduler: scheduler.New(table),
		engine:    engine,
		result:    result,
		log:       log,
	}, nil
}

// Run drives the simulation to completion: seed one TestRound per process
// at t=0, then repeatedly pop the earliest event and run a round for it,
// rescheduling unless the process has terminated, until the deadline is
// reached or the queue empties.
func (s *Simulator) Run() *reporting.Result {
	for id := 0; id < s.cfg.ProcessCount; id++ {
		s.scheduler.ScheduleAt(scheduler.TestRound, 0, id)
	}

	for s.scheduler.Now() < s.cfg.MaxTime {
		ev, ok := s.scheduler.Cause()
		if !ok {
			s.log.Warn("event queue drained before deadline", "time", s.scheduler.Now())
			break
		}

		switch ev.Kind {
		case scheduler.TestRound:
			if s.table.Terminated(ev.ProcessID) {
				continue
			}
			s.engine.RunRound(ev.At, ev.ProcessID)
			if !s.table.Terminated(ev.ProcessID) {
				s.scheduler.Schedule(scheduler.TestRound, s.cfg.TestPeriod, ev.ProcessID)
			}
			if s.metrics != nil {
				s.metrics.update(s.engine.Counters.TestCount, s.engine.Counters.FalseNegativeCount,
					s.engine.Counters.TerminationCount, s.cfg.ProcessCount)
			}
		}
	}

	s.result.TestCount = s.engine.Counters.TestCount
	s.result.FalseNegativeCount = s.engine.Counters.FalseNegativeCount
	s.result.TerminationCount = s.engine.Counters.TerminationCount
	s.result.RemainingProcesses = s.cfg.ProcessCount - s.engine.Counters.TerminationCount

	return s.result
}

// StateVector exposes a process's current state vector for callers (such
// as tests) that need to inspect convergence directly.
func (s *Simulator) StateVector(id int) []int64 {
	return s.table.StateVector(id)
}

// Terminated reports whether process id self-terminated during the run.
func (s *Simulator) Terminated(id int) bool {
	return s.table.Terminated(id)
}
