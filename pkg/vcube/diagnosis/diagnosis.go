// Package diagnosis implements the VCube test-round algorithm: parity
// timestamp updates, the first-correct-tester walk, gossip, and the
// false-negative/self-termination reaction.
package diagnosis

import (
	"fmt"

	"github.com/Lodek/vcube/pkg/randsrc"
	"github.com/Lodek/vcube/pkg/reporting"
	"github.com/Lodek/vcube/pkg/vcube/cis"
	"github.com/Lodek/vcube/pkg/vcube/process"
)

// Outcome is the result of a single test of one process by another.
type Outcome int

const (
	Correct Outcome = iota
	Faulty
	FalseNegative
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "CORRECT"
	case Faulty:
		return "FAULTY"
	case FalseNegative:
		return "FALSE_NEGATIVE"
	default:
		return "UNKNOWN"
	}
}

// isEven reports whether a logical timestamp encodes "correct".
func isEven(ts int64) bool {
	return ts%2 == 0
}

// NextTimestamp implements the parity-as-version update rule: the logical
// timestamp's parity alone encodes belief, so it only advances when the
// test outcome disagrees with the current belief.
// A FalseNegative outcome is treated as Faulty for parity purposes: it
// flips the tester's belief even though the testee is in fact up.
func NextTimestamp(current int64, outcome Outcome) int64 {
	wasCorrectBelief := isEven(current)
	testeeAppearsCorrect := outcome == Correct

	if wasCorrectBelief == testeeAppearsCorrect {
		return current
	}
	return current + 1
}

// FirstCorrectTester reports whether tester is the unique, first correct
// process (per tester's own state vector) in cis(target, level). Only the
// process for which this returns true performs the test this round.
//
// len(stateVector) must be a power of two: cis(target, level) is
// hypercube arithmetic and only enumerates valid indices for such N.
func FirstCorrectTester(stateVector []int64, level, tester, target int) bool {
	for _, pid := range cis.Cluster(target, level) {
		if pid == tester {
			return true
		}
		if !isEven(stateVector[pid]) {
			// tester believes pid faulty; keep walking.
			continue
		}
		return false
	}
	return false
}

// EventSink receives the simulator's output-only log of false negatives
// and self-terminations. The engine records these events only through
// this narrow interface, not through any concrete result type.
type EventSink interface {
	AppendFalseNegative(at float64, message string)
	AppendSelfTermination(at float64, message string)
}

// Counters accumulates the aggregate counts the result record reports.
type Counters struct {
	TestCount          int
	FalseNegativeCount int
	TerminationCount   int
}

// Engine runs VCube test rounds against a shared process table.
type Engine struct {
	table    *process.Table
	rand     *randsrc.Source
	fnProb   float64
	log      *reporting.Logger
	sink     EventSink
	Counters Counters
}

// NewEngine constructs a diagnosis engine. fnProb is the probability that
// a test of an up process yields FalseNegative instead of Correct.
func NewEngine(table *process.Table, rand *randsrc.Source, fnProb float64, log *reporting.Logger, sink EventSink) *Engine {
	return &Engine{
		table:  table,
		rand:   rand,
		fnProb: fnProb,
		log:    log,
		sink:   sink,
	}
}

// singleTest determines the outcome of one tester testing one testee: a
// down testee always fails the test, an up testee fails it only with
// probability fnProb (the false-negative case), and succeeds otherwise.
func (e *Engine) singleTest(target int) Outcome {
	if !e.table.IsUp(target) {
		return Faulty
	}
	if e.rand.Chance(e.fnProb) {
		return FalseNegative
	}
	return Correct
}

// RunRound runs one full test round for tester t across every cluster
// level, updating t's state vector, gossiping from correct testees, and
// terminating t if it discovers it is wrongly suspected.
func (e *Engine) RunRound(now float64, t int) {
	if e.table.Terminated(t) {
		return
	}

	n := e.table.Size()
	levels := cis.CeilLog2(n)
	testerVector := e.table.StateVector(t)

	for level := 1; level <= levels; level++ {
		if e.table.Terminated(t) {
			return
		}

		for target := 0; target < n; target++ {
			if !FirstCorrectTester(testerVector, level, t, target) {
				continue
			}

			outcome := e.singleTest(target)
			e.Counters.TestCount++

			if outcome == FalseNegative {
				e.Counters.FalseNegativeCount++
				msg := fmt.Sprintf("process %d false-negative tested process %d as faulty", t, target)
				e.sink.AppendFalseNegative(now, msg)
				e.log.Debug("false negative", "time", now, "tester", t, "target", target)
			}

			testerVector[target] = NextTimestamp(testerVector[target], outcome)

			testeeIsUp := outcome == Correct || outcome == FalseNegative
			if !testeeIsUp {
				e.log.Debug("test outcome", "time", now, "tester", t, "target", target, "outcome", outcome.String())
				continue
			}

			e.log.Debug("test outcome", "time", now, "tester", t, "target", target, "outcome", outcome.String())

			targetVector := e.table.StateVector(target)
			if !isEven(targetVector[t]) {
				e.table.Terminate(t)
				e.Counters.TerminationCount++
				msg := fmt.Sprintf("process %d self-terminated: process %d believes it faulty", t, target)
				e.sink.AppendSelfTermination(now, msg)
				e.log.Info("self-termination", "time", now, "process", t, "accuser", target)
				return
			}

			gossip(testerVector, targetVector)
		}
	}
}

// gossip merges the testee's state vector into the tester's by pointwise
// maximum: newer evidence about any process always wins.
func gossip(tester, testee []int64) {
	for j := range tester {
		if testee[j] > tester[j] {
			tester[j] = testee[j]
		}
	}
}
