package store

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/vearne/lockcounter/harness"
)

// Summary is the persisted part of a RunReport. Observations are not kept.
type Summary struct {
	ID              string
	Strategy        string
	Initial         int64
	Readers         int
	Writers         int
	ReadsPerReader  int
	WritesPerWriter int
	FinalValue      int64
	Expected        int64
	Elapsed         time.Duration
	Ops             int
	State           string
	Failures        int
}

func SummaryOf(r *harness.RunReport) Summary {
	d := r.Descriptor
	return Summary{
		ID:              r.ID,
		Strategy:        d.Strategy.String(),
		Initial:         d.Initial,
		Readers:         d.Readers,
		Writers:         d.Writers,
		ReadsPerReader:  d.ReadsPerReader,
		WritesPerWriter: d.WritesPerWriter,
		FinalValue:      r.FinalValue,
		Expected:        r.Expected(),
		Elapsed:         r.Elapsed,
		Ops:             r.Ops(),
		State:           r.State.String(),
		Failures:        len(r.Failures()),
	}
}

// fields flattens s into hash field/value pairs in a fixed order.
func (s Summary) fields() []interface{} {
	return []interface{}{
		"strategy", s.Strategy,
		"initial", strconv.FormatInt(s.Initial, 10),
		"readers", strconv.Itoa(s.Readers),
		"writers", strconv.Itoa(s.Writers),
		"reads_per_reader", strconv.Itoa(s.ReadsPerReader),
		"writes_per_writer", strconv.Itoa(s.WritesPerWriter),
		"final", strconv.FormatInt(s.FinalValue, 10),
		"expected", strconv.FormatInt(s.Expected, 10),
		"elapsed_ns", strconv.FormatInt(int64(s.Elapsed), 10),
		"ops", strconv.Itoa(s.Ops),
		"state", s.State,
		"failures", strconv.Itoa(s.Failures),
	}
}

func parseSummary(id string, m map[string]string) (Summary, error) {
	s := Summary{ID: id, Strategy: m["strategy"], State: m["state"]}

	ints := []struct {
		field string
		dst   *int
	}{
		{"readers", &s.Readers},
		{"writers", &s.Writers},
		{"reads_per_reader", &s.ReadsPerReader},
		{"writes_per_writer", &s.WritesPerWriter},
		{"ops", &s.Ops},
		{"failures", &s.Failures},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(m[f.field])
		if err != nil {
			return Summary{}, errors.Wrapf(err, "field %s", f.field)
		}
		*f.dst = v
	}

	int64s := []struct {
		field string
		dst   *int64
	}{
		{"initial", &s.Initial},
		{"final", &s.FinalValue},
		{"expected", &s.Expected},
	}
	for _, f := range int64s {
		v, err := strconv.ParseInt(m[f.field], 10, 64)
		if err != nil {
			return Summary{}, errors.Wrapf(err, "field %s", f.field)
		}
		*f.dst = v
	}

	ns, err := strconv.ParseInt(m["elapsed_ns"], 10, 64)
	if err != nil {
		return Summary{}, errors.Wrap(err, "field elapsed_ns")
	}
	s.Elapsed = time.Duration(ns)
	return s, nil
}
