package workitem

import "time"

// processStart anchors the monotonic tick clock used throughout the wire
// schema (see proto/bench.proto): timestamps are nanoseconds since this
// process started, never wall-clock time. Grounded on the teacher's own
// process-relative clock in go/src/benchlib/process.go (NowMicros /
// ProcessStartTimeMicros), generalized from microseconds to nanoseconds.
var processStart = time.Now()

// NowTicks returns the current monotonic tick, in nanoseconds since
// process start. Safe for concurrent use; time.Since uses the runtime's
// monotonic clock reading, so ticks are immune to wall-clock adjustment.
func NowTicks() int64 {
	return int64(time.Since(processStart))
}
