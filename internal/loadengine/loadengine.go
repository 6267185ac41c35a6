// Package loadengine implements the Steady-State Load Engine (spec
// §4.E): holds exactly K requests in flight for a fixed duration,
// issuing calls through internal/rpcclient and accumulating Outcomes.
//
// Grounded on the teacher's own concurrency idiom — a fixed worker
// count plus a sync.WaitGroup draining to completion
// (go/src/goclient.go's worker goroutines, clientlib's per-request
// goroutine dispatch) — generalized from a fixed repeat count to a
// fixed in-flight budget enforced by a buffered channel of permits
// (rejected github.com/golang/sync/semaphore: nothing in the retrieval
// pack actually imports it, only a comment mentions it, so a Go
// channel — the idiom the teacher itself reaches for everywhere else —
// is used instead).
package loadengine

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/queueprobe/qprobe/internal/workitem"
)

// Caller is the subset of *rpcclient.Pool the engine needs; accepting
// an interface here keeps this package free of a direct rpcclient
// import, so it is testable with a fake.
type Caller interface {
	Call(ctx context.Context, requestID string) workitem.Outcome
}

// Result is the populated accumulator returned after one run: totals,
// per-success latency and queue-wait samples, per-timeout-layer tag
// counts, and the actual elapsed duration (spec §4.E).
type Result struct {
	Total            int
	SuccessLatency   []int64
	SuccessQueueWait []int64
	TimeoutLayers    map[workitem.TimeoutLayer]int
	ErrorCount       int
	SuccessCount     int
	TimeoutCount     int
	ActualDuration   time.Duration
}

// Run holds exactly K requests in flight for duration T, issuing calls
// via caller (spec §4.E). It returns once T elapses or ctx is
// cancelled, after awaiting every outstanding unit.
func Run(ctx context.Context, caller Caller, k int, duration time.Duration) *Result {
	if k < 1 {
		k = 1
	}
	permits := make(chan struct{}, k)
	for i := 0; i < k; i++ {
		permits <- struct{}{}
	}

	var mu sync.Mutex
	res := &Result{TimeoutLayers: make(map[workitem.TimeoutLayer]int)}

	var wg sync.WaitGroup
	start := time.Now()
	deadline := start.Add(duration)
	seq := 0

loop:
	for {
		if time.Now().After(deadline) || ctx.Err() != nil {
			break loop
		}
		select {
		case <-ctx.Done():
			break loop
		case <-permits:
		}

		seq++
		requestID := strconv.Itoa(seq)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { permits <- struct{}{} }()

			o := caller.Call(ctx, requestID)

			mu.Lock()
			record(res, o)
			mu.Unlock()
		}()
	}

	wg.Wait()
	res.ActualDuration = time.Since(start)
	return res
}

func record(res *Result, o workitem.Outcome) {
	res.Total++
	switch o.Kind {
	case workitem.KindSuccess:
		res.SuccessCount++
		res.SuccessLatency = append(res.SuccessLatency, o.Latency)
		if o.Success() && o.EnqueueTime != 0 && o.DequeueTime != 0 {
			res.SuccessQueueWait = append(res.SuccessQueueWait, o.DequeueTime-o.EnqueueTime)
		}
	case workitem.KindTimeout:
		res.TimeoutCount++
		res.TimeoutLayers[o.Layer]++
	case workitem.KindTransportError, workitem.KindCancelled:
		res.ErrorCount++
	}
}
