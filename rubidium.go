package rubidium

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// |||||| NAMING ||||||

// Registered functions carry a prefix so name-based filtering and editor
// search stay cheap. Tests and benchmarks use distinct prefixes.
const (
	TestPrefix  = "test_"
	BenchPrefix = "bench_"
)

func validateName(name, prefix string) error {
	if name == "" {
		return newSimpleError(ErrNaming, "rubidium: registration requires a non-empty name")
	}
	if !strings.HasPrefix(name, prefix) {
		return newSimpleError(ErrNaming, fmt.Sprintf("rubidium: name %q must begin with %q", name, prefix))
	}
	return nil
}

// |||||| TESTER ||||||

type benchmark struct {
	name   string
	fn     func()
	runner Runner
}

// Tester holds the benchmark registry, the calibration cache, and the
// currently active run. Execution is single-threaded and synchronous: tests
// run immediately when invoked, benchmarks run in registration order when
// Run is called.
type Tester struct {
	opts    *options
	cal     *Calibration
	current *Run
	benches []benchmark
}

func New(opts ...Option) *Tester {
	return &Tester{opts: newOptions(opts...), cal: NewCalibration()}
}

// Current returns the active run, or nil outside any dispatch.
func (t *Tester) Current() *Run {
	return t.current
}

// Calibration exposes the tester's calibration cache.
func (t *Tester) Calibration() *Calibration {
	return t.cal
}

// Bench registers a benchmark to be measured by the default runner.
func (t *Tester) Bench(name string, fn func()) error {
	return t.BenchRunner(name, fn, nil)
}

// BenchRunner registers a benchmark with a per-benchmark runner override.
func (t *Tester) BenchRunner(name string, fn func(), rn Runner) error {
	if err := validateName(name, BenchPrefix); err != nil {
		return err
	}
	t.benches = append(t.benches, benchmark{name: name, fn: fn, runner: rn})
	return nil
}

// Test executes a test body immediately, parented to the active run. A test
// whose full path falls outside the filter is skipped and returns a nil Run.
func (t *Tester) Test(name string, fn func()) (*Run, error) {
	if err := validateName(name, TestPrefix); err != nil {
		return nil, err
	}
	path := name
	if t.current != nil {
		path = t.current.NameFull() + Separator + name
	}
	if !t.opts.filter.MatchTest(path) {
		t.opts.logger.Debug("test filtered", zap.String("path", path))
		return nil, nil
	}
	return t.dispatch(name, fn, DeoptRunner{})
}

// Run measures every registered benchmark whose name passes the filter, in
// registration order. A single-pass deopt round over all of them precedes
// measurement, so benchmarks that would bias each other while hot on one
// code shape measure independently.
func (t *Tester) Run() ([]*Run, error) {
	var selected []benchmark
	for _, b := range t.benches {
		if t.opts.filter.MatchBench(b.name) {
			selected = append(selected, b)
		}
	}
	for _, b := range selected {
		r, err := NewRun(b.name, nil)
		if err != nil {
			return nil, err
		}
		if err := (DeoptRunner{}).Run(b.fn, r, t.cal); err != nil {
			return nil, errors.Wrapf(err, "rubidium: deopt pass for %s", b.name)
		}
		t.opts.logger.Debug("deopt pass", zap.String("bench", b.name), zap.Duration("time", r.Time().Duration()))
	}
	runs := make([]*Run, 0, len(selected))
	for _, b := range selected {
		rn := b.runner
		if rn == nil {
			rn = t.opts.runner
		}
		r, err := t.dispatch(b.name, b.fn, rn)
		if err != nil {
			return runs, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// dispatch executes one workload through a runner: fresh Run parented to the
// active run, start hook, bind as active, run, restore the previous active
// run on every exit path, consistency check, end hook.
func (t *Tester) dispatch(name string, fn func(), rn Runner) (*Run, error) {
	r, err := NewRun(name, t.current)
	if err != nil {
		return nil, err
	}
	t.opts.reporter.ReportStart(r)
	prev := t.current
	t.current = r
	defer func() {
		t.current = prev
	}()
	t.opts.logger.Debug("dispatch", zap.String("run", r.NameFull()), zap.String("runner", rn.Class()))
	if err := rn.Run(fn, r, t.cal); err != nil {
		return nil, errors.Wrapf(err, "rubidium: %s", r.NameFull())
	}
	if err := r.ReqDone(); err != nil {
		return nil, err
	}
	t.opts.reporter.ReportEnd(r)
	return r, nil
}
