package rubidium

import (
	"golang.org/x/sync/singleflight"
)

const (
	// nowSamples is the number of back-to-back clock reads used to estimate
	// the mean cost of one read.
	nowSamples = 50000
	// nowFallbackSamples is the sample size of the ad-hoc estimate returned
	// while a class is still cold.
	nowFallbackSamples = 1000
)

var sinkStamp TimeStamp

// Calibration caches the two correction terms each runner class subtracts
// from raw measurements: the mean cost of one clock read (nowAvg) and the
// cost of the harness loop itself (overhead). Entries are keyed by runner
// class and populated at most once per class; the cache is owned by a Tester
// and passed to every runner invocation rather than held in package state.
type Calibration struct {
	sf      singleflight.Group
	entries map[string]*calibration
}

type calibration struct {
	warm     bool
	passes   int
	overhead float64
	nowAvg   float64
}

func NewCalibration() *Calibration {
	return &Calibration{entries: make(map[string]*calibration)}
}

func (c *Calibration) entry(class string) *calibration {
	e, ok := c.entries[class]
	if !ok {
		e = &calibration{}
		c.entries[class] = e
	}
	return e
}

// Warmed reports whether class has been calibrated.
func (c *Calibration) Warmed(class string) bool {
	return c.entry(class).warm
}

// Passes returns how many times the expensive calibration passes ran for
// class. Stays at 1 after the first Warm, which is what makes idempotence
// observable.
func (c *Calibration) Passes(class string) int {
	return c.entry(class).passes
}

// Overhead returns the calibrated harness overhead for class in nanoseconds,
// or zero while the class is cold. DeoptRunner never warms its class, so it
// always reads zero here.
func (c *Calibration) Overhead(class string) float64 {
	return c.entry(class).overhead
}

// NowAvg returns the calibrated mean cost of one clock read in nanoseconds.
// While the class is cold it falls back to a small-sample estimate.
func (c *Calibration) NowAvg(class string) float64 {
	e := c.entry(class)
	if e.nowAvg == 0 {
		return estimateNowAvg(nowFallbackSamples)
	}
	return e.nowAvg
}

// Warm calibrates the runner's class if it is still cold. The warm flag is
// raised before any measuring happens: the strategy's own run loop is invoked
// below and would otherwise recurse back into Warm.
func (c *Calibration) Warm(rn Runner) error {
	class := rn.Class()
	e := c.entry(class)
	if e.warm {
		return nil
	}
	e.warm = true
	_, err, _ := c.sf.Do(class, func() (interface{}, error) {
		// Distinct no-op identities keep the measured code path polymorphic,
		// so the measurement passes below see representative performance.
		for _, noop := range warmupNoops() {
			r, err := NewRun("calibrate-warmup", nil)
			if err != nil {
				return nil, err
			}
			if err := rn.warmup(noop, r, c); err != nil {
				return nil, err
			}
		}
		e.nowAvg = estimateNowAvg(nowSamples)
		r, err := NewRun("calibrate-overhead", nil)
		if err != nil {
			return nil, err
		}
		if err := rn.warmup(func() {}, r, c); err != nil {
			return nil, err
		}
		e.overhead = r.Avg
		if e.overhead < 0 {
			e.overhead = 0
		}
		e.passes++
		return nil, nil
	})
	return err
}

func warmupNoops() [4]func() {
	return [4]func(){
		func() {},
		func() {},
		func() {},
		func() {},
	}
}

func estimateNowAvg(samples int) float64 {
	start := Now()
	for i := 0; i < samples; i++ {
		sinkStamp = Now()
	}
	end := Now()
	return float64(end.Since(start)) / float64(samples)
}
