package diagnosis_test

import (
	"testing"

	"github.com/Lodek/vcube/pkg/vcube/diagnosis"
)

func TestNextTimestamp_Table(t *testing.T) {
	cases := []struct {
		current int64
		outcome diagnosis.Outcome
		want    int64
	}{
		{0, diagnosis.Correct, 0},
		{0, diagnosis.Faulty, 1},
		{1, diagnosis.Correct, 2},
		{1, diagnosis.Faulty, 1},
		{2, diagnosis.FalseNegative, 3},
	}

	for _, c := range cases {
		got := diagnosis.NextTimestamp(c.current, c.outcome)
		if got != c.want {
			t.Errorf("NextTimestamp(%d, %v) = %d, want %d", c.current, c.outcome, got, c.want)
		}
	}
}

func TestNextTimestamp_ParityInvariant(t *testing.T) {
	// NextTimestamp(t, CORRECT) is even; (t, FAULTY) and (t,
	// FALSE_NEGATIVE) are odd, regardless of starting parity.
	for _, start := range []int64{0, 1, 2, 3, 100, 101} {
		if got := diagnosis.NextTimestamp(start, diagnosis.Correct); got%2 != 0 {
			t.Errorf("NextTimestamp(%d, CORRECT) = %d, want even", start, got)
		}
		if got := diagnosis.NextTimestamp(start, diagnosis.Faulty); got%2 != 1 {
			t.Errorf("NextTimestamp(%d, FAULTY) = %d, want odd", start, got)
		}
		if got := diagnosis.NextTimestamp(start, diagnosis.FalseNegative); got%2 != 1 {
			t.Errorf("NextTimestamp(%d, FALSE_NEGATIVE) = %d, want odd", start, got)
		}
	}
}

func TestFirstCorrectTester_UniqueResponsibility(t *testing.T) {
	// For a fixed (target, level) and a fixed state vector, exactly
	// one of the n processes is "first correct".
	n := 8
	level := 3
	// everyone believes everyone correct (all-zero vectors).
	sv := make([]int64, n)

	matches := 0
	for tester := 0; tester < n; tester++ {
		if diagnosis.FirstCorrectTester(sv, level, tester, 0) {
			matches++
		}
	}
	if matches != 1 {
		t.Errorf("expected exactly one first-correct tester, got %d", matches)
	}
}

func TestFirstCorrectTester_SkipsSuspectedFaulty(t *testing.T) {
	// cis(0, 2) = [2, 3]. A candidate is always responsible for itself
	// regardless of what it believes about its own parity, so process 2
	// is first-correct for target 0 whenever it is the one asking. From
	// process 3's perspective, if 3 believes 2 faulty (odd), 3 is also
	// first-correct for target 0, since it walks past the believed-faulty
	// 2 to find itself next in cis(0, 2).
	n := 8
	sv := make([]int64, n)
	sv[2] = 1 // odd: tester believes 2 faulty

	if !diagnosis.FirstCorrectTester(sv, 2, 2, 0) {
		t.Error("process 2 is always responsible for itself in cis(0, 2)")
	}
	if !diagnosis.FirstCorrectTester(sv, 2, 3, 0) {
		t.Error("process 3 should be first-correct once 2 is believed faulty")
	}
}
