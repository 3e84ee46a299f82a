package lockcounter

import "github.com/pkg/errors"

var (
	// ErrLockPoisoned is returned by every operation on a counter after a holder
	// panicked while holding its lock.
	ErrLockPoisoned = errors.New("lock poisoned")

	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrWorkerFailure marks a worker that terminated abnormally for a reason
	// other than lock poisoning.
	ErrWorkerFailure = errors.New("worker failure")
)
