package harness

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/vearne/lockcounter"
	slog "github.com/vearne/simplelog"
)

type Role int

const (
	Reader Role = iota
	Writer
)

func (r Role) String() string {
	if r == Writer {
		return "writer"
	}
	return "reader"
}

// Observation is one critical section as seen from inside the lock.
// Acquired is its timestamp; [Acquired, Released] is the lock-held interval.
type Observation struct {
	Worker   int
	Role     Role
	Op       lockcounter.Op
	Value    int64
	Acquired time.Time
	Released time.Time
}

type WorkerReport struct {
	ID      int
	Role    Role
	Ops     int
	Elapsed time.Duration
	Err     error
}

type HostInfo struct {
	LogicalCPUs int
	GOMAXPROCS  int
}

type RunReport struct {
	ID         string
	Descriptor Descriptor
	State      State

	FinalValue int64
	// FinalErr is set when the counter could not be read after the join.
	FinalErr   error
	Increments int64

	Elapsed      time.Duration
	Workers      []WorkerReport
	Observations []Observation
	// Joined counts the workers that had terminated when the report was built.
	Joined int

	Host HostInfo
}

func (r *RunReport) Strategy() lockcounter.Strategy {
	return r.Descriptor.Strategy
}

// Expected is the only deterministic outcome of a run.
func (r *RunReport) Expected() int64 {
	return r.Descriptor.Initial + r.Increments
}

func (r *RunReport) Ops() int {
	total := 0
	for _, w := range r.Workers {
		total += w.Ops
	}
	return total
}

// Throughput is completed operations per second of wall clock.
func (r *RunReport) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops()) / r.Elapsed.Seconds()
}

func (r *RunReport) Failures() []error {
	var errs []error
	for _, w := range r.Workers {
		if w.Err != nil {
			errs = append(errs, w.Err)
		}
	}
	if r.FinalErr != nil {
		errs = append(errs, r.FinalErr)
	}
	return errs
}

func (r *RunReport) Failed() bool {
	return len(r.Failures()) > 0
}

// Err returns the first failure of the run, or nil.
func (r *RunReport) Err() error {
	errs := r.Failures()
	if len(errs) == 0 {
		return nil
	}
	return errors.WithMessagef(errs[0], "run %s: %d failure(s)", r.ID, len(errs))
}

func hostInfo() HostInfo {
	info := HostInfo{GOMAXPROCS: runtime.GOMAXPROCS(0)}
	n, err := cpu.Counts(true)
	if err != nil {
		slog.Debug("cpu.Counts:%v", err)
		return info
	}
	info.LogicalCPUs = n
	return info
}
