// Package syntheticwork draws and spends a synthetic service-time delay:
// the server-side unit of work the queue worker invokes for every Work
// Item (spec §4.A). Grounded on the amortized-sleep busy-wait hybrid in
// the teacher's go/src/goclient.go sleeper type, generalized from a
// fixed per-call sleep debt to a log-uniform draw per call.
package syntheticwork

import (
	"math"
	"math/rand"
	"runtime"
	"time"
)

// Distribution draws delays whose natural log is uniform over
// [ln(minMicros), ln(maxMillis*1000)] (spec §4.A, §9). Not safe for
// concurrent use: rng is a single *rand.Rand with no internal
// synchronization. That's fine here because the single queue worker
// (internal/workqueue) is the only caller of Draw — if a second caller
// is ever added, it needs its own Distribution or its own lock.
type Distribution struct {
	lnMin, lnMax float64
	rng          *rand.Rand
}

// New builds a Distribution over [minMicros, maxMillis*1000] microseconds.
// Panics if the bounds are non-positive or inverted — a configuration
// error, not a runtime condition callers should recover from.
func New(minMicros, maxMillis float64, seed int64) *Distribution {
	maxMicros := maxMillis * 1000
	if minMicros <= 0 || maxMicros <= 0 || minMicros > maxMicros {
		panic("syntheticwork: invalid bounds")
	}
	return &Distribution{
		lnMin: math.Log(minMicros),
		lnMax: math.Log(maxMicros),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Draw returns one delay in microseconds, log-uniform over the
// Distribution's configured range.
func (d *Distribution) Draw() float64 {
	if d.lnMax == d.lnMin {
		return math.Exp(d.lnMin)
	}
	return math.Exp(d.lnMin + d.rng.Float64()*(d.lnMax-d.lnMin))
}

// Spend blocks for approximately micros microseconds: a coarse sleep for
// the whole-millisecond portion, then a monotonic-clock busy-wait for
// the sub-millisecond residual (spec §4.A). There is no failure mode —
// it always returns after approximately the requested delay; overruns
// are scheduling noise, not an error the caller should see.
func Spend(micros float64) {
	d := time.Duration(micros * float64(time.Microsecond))
	if d <= 0 {
		return
	}
	const minSleepGranularity = time.Millisecond
	if d >= minSleepGranularity {
		coarse := d.Truncate(minSleepGranularity)
		time.Sleep(coarse)
		d -= coarse
	}
	busyWait(d)
}

// busyWait spins until the monotonic clock has advanced by d, yielding
// the processor between checks so the spin doesn't starve the runtime
// scheduler's other goroutines (notably the queue worker's own
// dequeue/enqueue bookkeeping, which must keep making progress during
// load).
func busyWait(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}
