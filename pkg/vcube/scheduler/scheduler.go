// Package scheduler implements the simulator's discrete-event engine: a
// minimum-time priority queue driving a virtual clock, with FIFO
// tiebreaking at equal timestamps.
package scheduler

import (
	"container/heap"
)

// EventKind enumerates the scheduled events this simulator drives. Only
// TestRound exists: this simulator variant reacts to false negatives by
// self-termination rather than by separate fault/recovery events.
type EventKind int

const (
	TestRound EventKind = iota
)

// Event is a scheduled (time, kind, process) tuple.
type Event struct {
	At        float64
	Kind      EventKind
	ProcessID int
	seq       uint64
}

// eventHeap is a container/heap.Interface ordering Events by ascending
// time, ties broken by ascending seq (insertion order).
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].At != h[j].At {
		return h[i].At < h[j].At
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Facility is the per-process up/down resource the scheduler marks busy
// and free. The process table implements it; the scheduler never tracks
// facility status itself, so the table stays the single owner of that
// state.
type Facility interface {
	Request(pid int)
	Release(pid int)
	IsUp(pid int) bool
}

// Scheduler owns the virtual clock and the event queue, and delegates
// facility status to the process table behind the Facility interface.
type Scheduler struct {
	now      float64
	queue    eventHeap
	seq      uint64
	facility Facility
}

// New creates a scheduler with the clock at 0.
func New(facility Facility) *Scheduler {
	s := &Scheduler{facility: facility}
	heap.Init(&s.queue)
	return s
}

// Now returns the current virtual time.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Schedule enqueues an event of the given kind for pid at now+delay,
// assigning it the next FIFO tiebreaker.
func (s *Scheduler) Schedule(kind EventKind, delay float64, pid int) {
	heap.Push(&s.queue, &Event{
		At:        s.now + delay,
		Kind:      kind,
		ProcessID: pid,
		seq:       s.nextSeq(),
	})
}

// ScheduleAt enqueues an event at an absolute virtual time, used to seed
// the t=0 TestRound for every process.
func (s *Scheduler) ScheduleAt(kind EventKind, at float64, pid int) {
	heap.Push(&s.queue, &Event{
		At:        at,
		Kind:      kind,
		ProcessID: pid,
		seq:       s.nextSeq(),
	})
}

func (s *Scheduler) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// Cause pops the earliest event and advances the virtual clock to its
// time. The second return value is false if the queue is empty.
func (s *Scheduler) Cause() (Event, bool) {
	if s.queue.Len() == 0 {
		return Event{}, false
	}
	ev := heap.Pop(&s.queue).(*Event)
	s.now = ev.At
	return *ev, true
}

// Empty reports whether the event queue has no pending events.
func (s *Scheduler) Empty() bool {
	return s.queue.Len() == 0
}

// Request marks process pid's facility busy (up).
func (s *Scheduler) Request(pid int) {
	s.facility.Request(pid)
}

// Release marks process pid's facility free (down).
func (s *Scheduler) Release(pid int) {
	s.facility.Release(pid)
}

// Status reports process pid's facility status: true is up.
func (s *Scheduler) Status(pid int) bool {
	return s.facility.IsUp(pid)
}
