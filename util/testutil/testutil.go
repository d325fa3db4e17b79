package testutil

// Noop returns a workload that does nothing, for calibration and timing
// bound tests.
func Noop() func() {
	return func() {}
}

// Spin returns a workload that busy-loops n times, cheap but not free.
func Spin(n int) func() {
	sink := 0
	return func() {
		for i := 0; i < n; i++ {
			sink += i
		}
	}
}
