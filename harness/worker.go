package harness

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vearne/lockcounter"
	slog "github.com/vearne/simplelog"
	"golang.org/x/time/rate"
)

// worker is also the hook bound to its own counter handle, so every field
// it touches from OnAcquire/OnRelease belongs to this goroutine alone.
type worker struct {
	id         int
	role       Role
	iterations int
	done       int

	handle lockcounter.Counter
	record bool
	hold   time.Duration
	// faultAt is the op index at which to panic inside the lock, -1 for never.
	faultAt int
	logs    *rate.Limiter

	acquired     time.Time
	observations []Observation

	elapsed time.Duration
	err     error
}

func (w *worker) run(gate <-chan struct{}) {
	<-gate
	start := time.Now()
	defer func() {
		w.elapsed = time.Since(start)
		if r := recover(); r != nil {
			w.err = errors.Wrapf(lockcounter.ErrWorkerFailure, "worker %d panicked: %v", w.id, r)
		}
		// runtime.Goexit unwinds without a panic value
		if w.err == nil && w.done < w.iterations {
			w.err = errors.Wrapf(lockcounter.ErrWorkerFailure, "worker %d stopped after %d/%d ops", w.id, w.done, w.iterations)
		}
	}()

	for w.done < w.iterations {
		var (
			value int64
			err   error
		)
		if w.role == Writer {
			err = w.handle.Increment()
		} else {
			value, err = w.handle.Read()
		}
		if err != nil {
			w.err = w.classify(err)
			return
		}
		w.done++

		if w.logs != nil && w.logs.Allow() {
			slog.Debug("worker:%v, role:%v, done:%v/%v, value:%v", w.id, w.role, w.done, w.iterations, value)
		}
	}
}

func (w *worker) classify(err error) error {
	if errors.Is(err, lockcounter.ErrLockPoisoned) {
		return errors.WithMessagef(err, "worker %d", w.id)
	}
	return errors.Wrapf(lockcounter.ErrWorkerFailure, "worker %d: %v", w.id, err)
}

func (w *worker) OnAcquire(lockcounter.Op) {
	if w.record {
		w.acquired = time.Now()
	}
	if w.faultAt == w.done {
		panic(fmt.Sprintf("injected fault in worker %d at op %d", w.id, w.done))
	}
	if w.hold > 0 {
		time.Sleep(w.hold)
	}
}

func (w *worker) OnRelease(op lockcounter.Op, value int64) {
	if !w.record {
		return
	}
	w.observations = append(w.observations, Observation{
		Worker:   w.id,
		Role:     w.role,
		Op:       op,
		Value:    value,
		Acquired: w.acquired,
		Released: time.Now(),
	})
}

func (w *worker) report() WorkerReport {
	return WorkerReport{
		ID:      w.id,
		Role:    w.role,
		Ops:     w.done,
		Elapsed: w.elapsed,
		Err:     w.err,
	}
}
