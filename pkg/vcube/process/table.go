// Package process owns the per-run table of simulated VCube processes:
// their diagnosis state vectors, termination flag, and facility status.
package process

// Process is one simulated node. StateVector[j] is this process's belief
// about process j: even means correct, odd means faulty; a larger value
// is more recent evidence. Terminated is permanent once set.
type Process struct {
	ID          int
	StateVector []int64
	Terminated  bool
	up          bool
}

// Table owns every simulated process for one run. No component other than
// the diagnosis engine and the scheduler may mutate it.
type Table struct {
	processes []*Process
}

// NewTable allocates a table of n processes, every state vector zeroed and
// every process up.
func NewTable(n int) *Table {
	processes := make([]*Process, n)
	for i := range processes {
		processes[i] = &Process{
			ID:          i,
			StateVector: make([]int64, n),
			up:          true,
		}
	}
	return &Table{processes: processes}
}

// Size returns the number of processes in the table.
func (t *Table) Size() int {
	return len(t.processes)
}

// StateVector returns the live state vector slice for process id. The
// simulator's single-threaded event loop serializes all access, so
// returning the backing slice rather than a copy is safe and matches the
// gossip step's need to read another process's vector directly.
func (t *Table) StateVector(id int) []int64 {
	return t.processes[id].StateVector
}

// SetState sets process id's belief about process j to v.
func (t *Table) SetState(id, j int, v int64) {
	t.processes[id].StateVector[j] = v
}

// Terminated reports whether process id has voluntarily terminated.
func (t *Table) Terminated(id int) bool {
	return t.processes[id].Terminated
}

// Terminate marks process id as terminated and releases its facility.
// Idempotent: terminating an already-terminated process is a no-op.
func (t *Table) Terminate(id int) {
	p := t.processes[id]
	if p.Terminated {
		return
	}
	p.Terminated = true
	t.Release(id)
}

// Request marks process id's facility busy (up).
func (t *Table) Request(id int) {
	t.processes[id].up = true
}

// Release marks process id's facility free (down).
func (t *Table) Release(id int) {
	t.processes[id].up = false
}

// IsUp reports process id's facility status.
func (t *Table) IsUp(id int) bool {
	return t.processes[id].up
}
