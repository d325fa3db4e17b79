package rubidium

import (
	"fmt"
	"math"

	"rubidium/pk"
)

// Separator joins the names of nested runs into a full path.
const Separator = "/"

// Run captures one measured execution of a test or benchmark: its identity,
// timing span, repetition count and computed average cost. A fresh Run is
// created per invocation and mutated only by the owning runner while that
// invocation is in flight; afterwards it is read-only.
type Run struct {
	Key  pk.PK
	Name string
	// Parent is a back-reference to the enclosing Run, used for hierarchy
	// depth and path naming only. A Run never mutates its parent.
	Parent *Run
	Start  TimeStamp
	End    TimeStamp
	Runs   int
	// Avg is the cost of one workload execution in nanoseconds. Compensating
	// runners write a value below the raw Time()/Runs ratio.
	Avg float64
}

func NewRun(name string, parent *Run) (*Run, error) {
	if name == "" {
		return nil, newSimpleError(ErrNaming, "rubidium: run requires a non-empty name")
	}
	return &Run{
		Key:    pk.New(),
		Name:   name,
		Parent: parent,
		Start:  TimeStampUnset,
		End:    TimeStampUnset,
		Avg:    math.NaN(),
	}, nil
}

// Level counts ancestors. A root run is at level 0.
func (r *Run) Level() int {
	if r.Parent == nil {
		return 0
	}
	return r.Parent.Level() + 1
}

// NameFull joins ancestor names root-to-leaf with Separator.
func (r *Run) NameFull() string {
	if r.Parent == nil {
		return r.Name
	}
	return r.Parent.NameFull() + Separator + r.Name
}

// Time returns the measured span between Start and End.
func (r *Run) Time() TimeSpan {
	return r.End.Since(r.Start)
}

// Elapsed returns the span since Start, reading the clock when End has not
// been recorded yet, so an in-flight run can be inspected.
func (r *Run) Elapsed() TimeSpan {
	if r.End.IsSet() {
		return r.Time()
	}
	return Now().Since(r.Start)
}

// Done records the end of the run and computes the raw average. It validates
// before mutating, so a rejected call leaves the run untouched.
func (r *Run) Done(end TimeStamp, runs int) error {
	if !end.IsSet() || end <= 0 {
		return newSimpleError(ErrContract, fmt.Sprintf("rubidium: done requires a positive end timestamp, got %s", end))
	}
	if runs <= 0 {
		return newSimpleError(ErrContract, fmt.Sprintf("rubidium: done requires a positive run count, got %d", runs))
	}
	if r.Start.IsSet() && end.Before(r.Start) {
		return newSimpleError(ErrContract, fmt.Sprintf("rubidium: done end %s precedes start %s", end, r.Start))
	}
	r.End = end
	r.Runs = runs
	r.Avg = float64(r.Time()) / float64(runs)
	return nil
}

// ReqDone checks that a runner populated the run completely. It never
// mutates. A failure here is a defect in a runner strategy, not caller
// misuse.
func (r *Run) ReqDone() error {
	if r.Runs <= 0 {
		return newSimpleError(ErrInternal, fmt.Sprintf("rubidium: run %s finished with no executions", r.Name))
	}
	if !r.End.IsSet() || r.End <= 0 {
		return newSimpleError(ErrInternal, fmt.Sprintf("rubidium: run %s finished without an end timestamp", r.Name))
	}
	if math.IsNaN(r.Avg) || math.IsInf(r.Avg, 0) {
		return newSimpleError(ErrInternal, fmt.Sprintf("rubidium: run %s finished with a non-finite average", r.Name))
	}
	return nil
}

// Reset clears all measured fields back to their unset sentinels.
func (r *Run) Reset() {
	r.Start = TimeStampUnset
	r.End = TimeStampUnset
	r.Runs = 0
	r.Avg = math.NaN()
}
