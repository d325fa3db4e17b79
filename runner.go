package rubidium

import (
	"fmt"
)

// Class-level configuration knobs, independently overridable.
var (
	DefaultCount          = 100000
	DefaultWarmupCount    = 10000
	DefaultDuration       = 100 * Millisecond
	DefaultWarmupDuration = 25 * Millisecond
)

const (
	classCount = "count"
	classTime  = "time"
	classDeopt = "deopt"
)

// Runner is an execution strategy: it runs a zero-argument workload some
// number of times against a Run, measuring total elapsed time and writing the
// derived average onto the Run. A Runner is immutable after construction; a
// workload that fails propagates unmodified through it. The strategy family
// is closed: CountRunner, TimeRunner and DeoptRunner.
type Runner interface {
	// Class keys the shared calibration state for this strategy.
	Class() string
	Run(fn func(), r *Run, cal *Calibration) error
	// warmup runs the strategy at its warmup configuration, bypassing the
	// calibration trigger. Used by Calibration itself.
	warmup(fn func(), r *Run, cal *Calibration) error
}

// |||||| COUNT ||||||

// CountRunner executes the workload a fixed number of times in a tight
// sequence with no batching.
type CountRunner struct {
	count int
}

func NewCountRunner(count int) (CountRunner, error) {
	if count <= 0 {
		return CountRunner{}, newSimpleError(ErrContract, fmt.Sprintf("rubidium: count runner requires a positive count, got %d", count))
	}
	return CountRunner{count: count}, nil
}

// DefaultCountRunner returns a runner at the class default repetition count.
func DefaultCountRunner() CountRunner {
	return CountRunner{count: DefaultCount}
}

func (c CountRunner) Count() int {
	return c.count
}

func (c CountRunner) Class() string {
	return classCount
}

func (c CountRunner) Run(fn func(), r *Run, cal *Calibration) error {
	if err := cal.Warm(c); err != nil {
		return err
	}
	return c.measure(fn, r, cal, c.count)
}

func (c CountRunner) warmup(fn func(), r *Run, cal *Calibration) error {
	return c.measure(fn, r, cal, DefaultWarmupCount)
}

func (c CountRunner) measure(fn func(), r *Run, cal *Calibration, count int) error {
	r.Start = Now()
	for i := 0; i < count; i++ {
		fn()
	}
	if err := r.Done(Now(), count); err != nil {
		return err
	}
	// No clock reads happen inside the loop, so the clock-cost correction is
	// subtracted once, for the two boundary reads.
	r.Avg = (float64(r.Time())-cal.NowAvg(classCount))/float64(count) - cal.Overhead(classCount)
	return nil
}

// |||||| TIME ||||||

// TimeRunner executes the workload in rounds under a wall-clock budget. Each
// round runs the workload batch times without touching the clock, reads the
// clock once, then doubles batch. Total wall time may exceed the budget, but
// never by more than roughly 2x: the final round is at most as large as the
// sum of all prior runs.
type TimeRunner struct {
	budget TimeSpan
}

func NewTimeRunner(budget TimeSpan) (TimeRunner, error) {
	if budget <= 0 {
		return TimeRunner{}, newSimpleError(ErrContract, fmt.Sprintf("rubidium: time runner requires a positive budget, got %s", budget))
	}
	return TimeRunner{budget: budget}, nil
}

// DefaultTimeRunner returns a runner at the class default duration budget.
func DefaultTimeRunner() TimeRunner {
	return TimeRunner{budget: DefaultDuration}
}

func (t TimeRunner) Budget() TimeSpan {
	return t.budget
}

func (t TimeRunner) Class() string {
	return classTime
}

func (t TimeRunner) Run(fn func(), r *Run, cal *Calibration) error {
	if err := cal.Warm(t); err != nil {
		return err
	}
	return t.measure(fn, r, cal, t.budget)
}

func (t TimeRunner) warmup(fn func(), r *Run, cal *Calibration) error {
	return t.measure(fn, r, cal, DefaultWarmupDuration)
}

func (t TimeRunner) measure(fn func(), r *Run, cal *Calibration, budget TimeSpan) error {
	var (
		runs  int
		nows  int
		batch = 1
	)
	start := Now()
	deadline := start.Add(budget)
	for last := start; last.Before(deadline); {
		for i := 0; i < batch; i++ {
			fn()
		}
		runs += batch
		last = Now()
		nows++
		batch <<= 1
	}
	r.Start = start
	// A fresh read, not the last in-loop one: the final round's tail belongs
	// in the span.
	if err := r.Done(Now(), runs); err != nil {
		return err
	}
	r.Avg = (float64(r.Time())-cal.NowAvg(classTime)*float64(nows))/float64(runs) - cal.Overhead(classTime)
	return nil
}

// |||||| DEOPT ||||||

// DeoptRunner is a single uncalibrated pass. Running every registered
// benchmark through it once, interleaved, pollutes cross-benchmark
// specialization before real measurement begins.
type DeoptRunner struct{}

func (DeoptRunner) Class() string {
	return classDeopt
}

func (DeoptRunner) Run(fn func(), r *Run, _ *Calibration) error {
	r.Start = Now()
	fn()
	return r.Done(Now(), 1)
}

func (DeoptRunner) warmup(func(), *Run, *Calibration) error {
	return nil
}
