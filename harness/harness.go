package harness

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	slog "github.com/vearne/simplelog"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

type State int32

const (
	Idle State = iota
	Spawning
	Running
	Joining
	Completed
	CompletedWithError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spawning:
		return "spawning"
	case Running:
		return "running"
	case Joining:
		return "joining"
	case Completed:
		return "completed"
	case CompletedWithError:
		return "completed-with-error"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

var errBusy = errors.New("harness is already running")

// Harness drives reader and writer goroutines against one counter per run.
// Runs on one Harness are sequential.
type Harness struct {
	cfg   config
	state atomic.Int32
	busy  atomic.Bool
}

func New(opts ...Option) *Harness {
	h := Harness{cfg: defaultConfig()}
	// Loop through each option
	for _, opt := range opts {
		opt(&h.cfg)
	}
	return &h
}

// Run builds a counter for d, drives it with d's workers and returns once
// every worker has terminated.
func Run(d Descriptor, opts ...Option) (*RunReport, error) {
	return New(opts...).Run(d)
}

func (h *Harness) State() State {
	return State(h.state.Load())
}

func (h *Harness) setState(s State) {
	h.state.Store(int32(s))
	slog.Debug("harness state:%v", s)
}

// Run rejects an invalid descriptor before any goroutine starts. Once workers
// are spawned, their failures are reported in the RunReport, not returned.
func (h *Harness) Run(d Descriptor) (*RunReport, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := h.cfg.validate(d); err != nil {
		return nil, err
	}
	if !h.busy.CompareAndSwap(false, true) {
		return nil, errBusy
	}
	defer h.busy.Store(false)

	report := RunReport{
		ID:         uuid.NewString(),
		Descriptor: d,
		Workers:    make([]WorkerReport, 0, d.Workers()),
	}

	// 1. spawn workers, parked on the gate
	h.setState(Spawning)
	counter := h.cfg.newCounter(d.Initial, d.Strategy)
	var logs *rate.Limiter
	if h.cfg.logsPerSec > 0 {
		logs = rate.NewLimiter(rate.Limit(h.cfg.logsPerSec), 1)
	}

	workers := make([]*worker, 0, d.Workers())
	for i := 0; i < d.Readers; i++ {
		workers = append(workers, h.newWorker(len(workers), Reader, d.ReadsPerReader, logs))
	}
	for i := 0; i < d.Writers; i++ {
		workers = append(workers, h.newWorker(len(workers), Writer, d.WritesPerWriter, logs))
	}

	var (
		wg     sync.WaitGroup
		joined atomic.Int64
	)
	gate := make(chan struct{})
	for _, w := range workers {
		w.handle = counter.WithHook(w)
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			defer joined.Inc()
			w.run(gate)
		}(w)
	}

	// 2. release them together
	h.setState(Running)
	start := time.Now()
	close(gate)

	// 3. wait for every one of them
	h.setState(Joining)
	wg.Wait()
	report.Elapsed = time.Since(start)
	report.Joined = int(joined.Load())

	for _, w := range workers {
		w.handle = nil
		report.Workers = append(report.Workers, w.report())
		if w.role == Writer {
			report.Increments += int64(w.done)
		}
		if w.err != nil {
			slog.Error("run:%v, worker:%v, role:%v, error:%v", report.ID, w.id, w.role, w.err)
		}
	}
	report.Observations = mergeObservations(workers)
	report.FinalValue, report.FinalErr = counter.Read()
	report.Host = hostInfo()

	if report.Failed() {
		report.State = CompletedWithError
	} else {
		report.State = Completed
	}
	h.setState(report.State)
	slog.Info("run:%v, strategy:%v, final:%v, expected:%v, elapsed:%v, state:%v",
		report.ID, d.Strategy, report.FinalValue, report.Expected(), report.Elapsed, report.State)
	return &report, nil
}

func (h *Harness) newWorker(id int, role Role, iterations int, logs *rate.Limiter) *worker {
	w := worker{
		id:         id,
		role:       role,
		iterations: iterations,
		record:     h.cfg.record,
		hold:       h.cfg.hold,
		faultAt:    -1,
		logs:       logs,
	}
	if op, ok := h.cfg.faultAt[id]; ok {
		w.faultAt = op
	}
	if w.record {
		w.observations = make([]Observation, 0, min(iterations, maxPrealloc))
	}
	return &w
}

func mergeObservations(workers []*worker) []Observation {
	var total int
	for _, w := range workers {
		total += len(w.observations)
	}
	if total == 0 {
		return nil
	}
	all := make([]Observation, 0, total)
	for _, w := range workers {
		all = append(all, w.observations...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Acquired.Equal(all[j].Acquired) {
			return all[i].Worker < all[j].Worker
		}
		return all[i].Acquired.Before(all[j].Acquired)
	})
	return all
}
