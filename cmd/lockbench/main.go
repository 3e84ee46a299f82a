// Package main implements lockbench, a driver for the contention harness.
//
// It runs one workload of reader and writer goroutines against a shared
// counter and prints what happened:
//
//	lockbench -strategy rw -readers 10 -reads 20 -writers 1 -writes 20
//	lockbench -compare -hold 100us
//	lockbench -observe -redis localhost:6379
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vearne/lockcounter"
	"github.com/vearne/lockcounter/harness"
	"github.com/vearne/lockcounter/store"
	slog "github.com/vearne/simplelog"
)

type options struct {
	descriptor harness.Descriptor
	hold       time.Duration
	observe    bool
	compare    bool
	redisAddr  string
	redisPass  string
	debug      bool
}

func parseFlags(args []string) (options, error) {
	var (
		opts     options
		strategy string
	)
	d := harness.DefaultDescriptor()

	fs := flag.NewFlagSet("lockbench", flag.ContinueOnError)
	fs.StringVar(&strategy, "strategy", d.Strategy.String(), "exclusive | reader-writer")
	fs.Int64Var(&d.Initial, "initial", d.Initial, "starting counter value")
	fs.IntVar(&d.Readers, "readers", d.Readers, "number of reader goroutines")
	fs.IntVar(&d.ReadsPerReader, "reads", d.ReadsPerReader, "reads per reader")
	fs.IntVar(&d.Writers, "writers", d.Writers, "number of writer goroutines")
	fs.IntVar(&d.WritesPerWriter, "writes", d.WritesPerWriter, "increments per writer")
	fs.DurationVar(&opts.hold, "hold", 0, "time each operation holds the lock")
	fs.BoolVar(&opts.observe, "observe", false, "record and check the observation log")
	fs.BoolVar(&opts.compare, "compare", false, "run the workload under both strategies")
	fs.StringVar(&opts.redisAddr, "redis", "", "publish run summaries to this redis address")
	fs.StringVar(&opts.redisPass, "redis-password", "", "redis password")
	fs.BoolVar(&opts.debug, "debug", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	s, err := lockcounter.ParseStrategy(strategy)
	if err != nil {
		return opts, err
	}
	d.Strategy = s
	opts.descriptor = d
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if opts.debug {
		slog.SetLevel(slog.DebugLevel)
	}

	runOpts := []harness.Option{
		harness.WithObservations(opts.observe),
		harness.WithHoldTime(opts.hold),
	}
	if opts.debug {
		runOpts = append(runOpts, harness.WithLogEvery(10))
	}

	var reports []*harness.RunReport
	if opts.compare {
		cmp, err := harness.Compare(opts.descriptor, runOpts...)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		reports = append(reports, cmp.Exclusive, cmp.ReaderWriter)
		printReport(os.Stdout, cmp.Exclusive)
		printReport(os.Stdout, cmp.ReaderWriter)
		fmt.Printf("speedup (exclusive / reader-writer): %.2fx\n", cmp.Speedup())
	} else {
		report, err := harness.Run(opts.descriptor, runOpts...)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		reports = append(reports, report)
		printReport(os.Stdout, report)
	}

	if opts.redisAddr != "" {
		if err := publish(opts, reports); err != nil {
			slog.Error("publish:%v", err)
		}
	}

	for _, r := range reports {
		if r.Failed() {
			os.Exit(1)
		}
	}
}

func printReport(out io.Writer, r *harness.RunReport) {
	d := r.Descriptor
	fmt.Fprintf(out, "run %s [%s]\n", r.ID, d.Strategy)
	fmt.Fprintf(out, "  workload:   %d readers x %d, %d writers x %d, initial %d\n",
		d.Readers, d.ReadsPerReader, d.Writers, d.WritesPerWriter, d.Initial)
	fmt.Fprintf(out, "  host:       %d cpus, GOMAXPROCS %d\n", r.Host.LogicalCPUs, r.Host.GOMAXPROCS)
	fmt.Fprintf(out, "  state:      %s (%d/%d workers joined)\n", r.State, r.Joined, d.Workers())
	if r.FinalErr != nil {
		fmt.Fprintf(out, "  final:      unavailable: %v\n", r.FinalErr)
	} else {
		fmt.Fprintf(out, "  final:      %d (expected %d)\n", r.FinalValue, r.Expected())
	}
	fmt.Fprintf(out, "  elapsed:    %v, %.0f ops/s\n", r.Elapsed, r.Throughput())

	for _, w := range r.Workers {
		if w.Err != nil {
			fmt.Fprintf(out, "  worker %d (%s): %d ops in %v, failed: %v\n", w.ID, w.Role, w.Ops, w.Elapsed, w.Err)
		}
	}

	if r.Observations != nil {
		conflicts := harness.Conflicts(d.Strategy, r.Observations)
		fmt.Fprintf(out, "  observed:   %d critical sections, peak concurrent readers %d, %d conflicts\n",
			len(r.Observations), harness.PeakConcurrentReaders(r.Observations), len(conflicts))
	}
}

func publish(opts options, reports []*harness.RunReport) error {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.redisAddr,
		Password: opts.redisPass,
		DB:       0, // use default DB
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := store.NewRedisStore(ctx, client, "lockbench")
	if err != nil {
		return err
	}
	for _, r := range reports {
		n, err := s.Save(ctx, r)
		if err != nil {
			return err
		}
		slog.Info("saved run:%v, history:%v", r.ID, n)
	}
	return nil
}
