package rubidium

import (
	"strconv"
	"time"
)

// |||||| TIME STAMP ||||||

// TimeStamp is a reading of the monotonic clock in nanoseconds, anchored at
// process start. Wall-clock adjustments never move it.
type TimeStamp int64

// TimeStampUnset marks a timestamp that has not been recorded yet.
const TimeStampUnset TimeStamp = -1

var epoch = time.Now()

// Now reads the monotonic clock. This is the single timing primitive the
// runners measure with, and the one calibration estimates the cost of.
func Now() TimeStamp {
	return TimeStamp(time.Since(epoch))
}

func (ts TimeStamp) IsSet() bool {
	return ts >= 0
}

func (ts TimeStamp) After(t TimeStamp) bool {
	return ts > t
}

func (ts TimeStamp) Before(t TimeStamp) bool {
	return ts < t
}

func (ts TimeStamp) Add(span TimeSpan) TimeStamp {
	return TimeStamp(int64(ts) + int64(span))
}

// Since returns the span between ts and an earlier timestamp t.
func (ts TimeStamp) Since(t TimeStamp) TimeSpan {
	return TimeSpan(ts - t)
}

func (ts TimeStamp) String() string {
	if !ts.IsSet() {
		return "unset"
	}
	return strconv.FormatInt(int64(ts), 10) + "ns"
}

// |||||| TIME SPAN ||||||

type TimeSpan int64

const (
	Nanosecond  TimeSpan = 1
	Microsecond          = 1000 * Nanosecond
	Millisecond          = 1000 * Microsecond
	Second               = 1000 * Millisecond
)

func (s TimeSpan) Duration() time.Duration {
	return time.Duration(s)
}

func (s TimeSpan) Seconds() float64 {
	return s.Duration().Seconds()
}

func (s TimeSpan) String() string {
	return s.Duration().String()
}
