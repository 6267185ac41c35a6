package common

import (
	"fmt"
	"time"
)

// Time is a count of seconds, kept as a distinct type (rather than a bare
// float64) so a CPU-timing value can't silently be added to an unrelated
// float without a conversion. Grounded on the teacher's common.Time.
type Time float64

// Timing is a CPU-accounting triple: wall time plus the user/sys time a
// process (or a window of process activity) consumed. Used by
// internal/resources to detect host interference during a Concurrency
// Test Result's sampling window (SPEC_FULL §11), exactly the role
// Timing plays in the teacher's clientlib/client_controller.go.
type Timing struct {
	Wall, User, Sys Time
}

func (t Time) Seconds() float64 { return float64(t) }

func (t Time) Duration() Duration { return Duration(t * Time(time.Second)) }

// Sub returns the element-wise difference t-s.
func (t Timing) Sub(s Timing) Timing {
	t.Wall -= s.Wall
	t.User -= s.User
	t.Sys -= s.Sys
	return t
}

func (t Time) String() string {
	if t < 10e-9 && t > -10e-9 {
		return fmt.Sprintf("%.3fns", float64(t)*1e9)
	}
	return t.Duration().String()
}

func (ts Timing) String() string {
	return fmt.Sprintf("W: %v U: %v S: %v", ts.Wall, ts.User, ts.Sys)
}
