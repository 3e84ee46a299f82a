package harness

import (
	"sort"
	"time"

	"github.com/vearne/lockcounter"
)

// Overlaps reports whether the lock-held intervals of a and b intersect.
// Touching endpoints do not count: a release followed by an acquire at the
// same clock reading is a hand-off.
func Overlaps(a, b Observation) bool {
	return a.Acquired.Before(b.Released) && b.Acquired.Before(a.Released)
}

// Conflict is a pair of observations that held the lock at the same time
// although the strategy forbids it.
type Conflict struct {
	A, B Observation
}

// Conflicts returns every pair in obs that violates strategy: any overlap under
// Exclusive, and any overlap involving an increment under ReaderWriter.
func Conflicts(strategy lockcounter.Strategy, obs []Observation) []Conflict {
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Acquired.Before(sorted[j].Acquired)
	})

	var conflicts []Conflict
	for i := range sorted {
		a := sorted[i]
		for j := i + 1; j < len(sorted); j++ {
			b := sorted[j]
			if !b.Acquired.Before(a.Released) {
				break
			}
			if !Overlaps(a, b) {
				continue
			}
			if strategy == lockcounter.Exclusive || a.Op == lockcounter.OpIncrement || b.Op == lockcounter.OpIncrement {
				conflicts = append(conflicts, Conflict{A: a, B: b})
			}
		}
	}
	return conflicts
}

// PeakConcurrentReaders is the largest number of read critical sections that
// were in progress at once.
func PeakConcurrentReaders(obs []Observation) int {
	type event struct {
		at    time.Time
		delta int
	}
	events := make([]event, 0, 2*len(obs))
	for _, o := range obs {
		if o.Op != lockcounter.OpRead {
			continue
		}
		events = append(events, event{o.Acquired, 1}, event{o.Released, -1})
	}
	// releases sort before acquires at the same instant
	sort.Slice(events, func(i, j int) bool {
		if events[i].at.Equal(events[j].at) {
			return events[i].delta < events[j].delta
		}
		return events[i].at.Before(events[j].at)
	})

	peak, current := 0, 0
	for _, e := range events {
		current += e.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}
