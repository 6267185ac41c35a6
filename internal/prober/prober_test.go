package prober

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/queueprobe/qprobe/internal/syntheticwork"
	"github.com/queueprobe/qprobe/internal/workitem"
	"github.com/queueprobe/qprobe/internal/workqueue"
)

// alwaysPassCaller resolves every call as an immediate success.
type alwaysPassCaller struct{}

func (alwaysPassCaller) Call(ctx context.Context, requestID string) workitem.Outcome {
	return workitem.Outcome{
		Kind:            workitem.KindSuccess,
		TimelinePresent: true,
		Timeline:        workitem.Timeline{EnqueueTime: 1, DequeueTime: 2},
	}
}

// alwaysFailCaller resolves every call as a connection-layer timeout.
type alwaysFailCaller struct{}

func (alwaysFailCaller) Call(ctx context.Context, requestID string) workitem.Outcome {
	return workitem.Outcome{Kind: workitem.KindTimeout, Layer: workitem.Http2ConnectionLayer}
}

// concurrencyGatedCaller fails any call that observes more than `limit`
// concurrently in-flight calls, so steady-state load at K <= limit
// always passes SLO and K > limit always fails a predictable fraction
// of calls — a deterministic stand-in for a real server's saturation
// point, without a network or a synthetic-work sleep in the loop.
type concurrencyGatedCaller struct {
	limit    int32
	inFlight int32
}

func (c *concurrencyGatedCaller) Call(ctx context.Context, requestID string) workitem.Outcome {
	cur := atomic.AddInt32(&c.inFlight, 1)
	defer atomic.AddInt32(&c.inFlight, -1)
	time.Sleep(3 * time.Millisecond)
	if cur > c.limit {
		return workitem.Outcome{Kind: workitem.KindTimeout, Layer: workitem.Http2ConnectionLayer}
	}
	return workitem.Outcome{
		Kind:            workitem.KindSuccess,
		TimelinePresent: true,
		Timeline:        workitem.Timeline{EnqueueTime: 1, DequeueTime: 2},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.WarmupDuration = 5 * time.Millisecond
	cfg.TestDuration = 40 * time.Millisecond
	cfg.StabilityDuration = 40 * time.Millisecond
	cfg.InitialConcurrency = 2
	cfg.MaxConcurrency = 32
	cfg.BisectTolerance = 1
	return cfg
}

func newTestQueue() *workqueue.Queue {
	return workqueue.New(syntheticwork.New(1, 0.01, 1))
}

func TestRunNeverFailsYieldsNonZeroCeiling(t *testing.T) {
	q := newTestQueue()
	defer q.Shutdown(time.Second)

	p := New(q, alwaysPassCaller{}, testConfig())
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MaxConcurrency == 0 {
		t.Fatalf("expected a non-zero max concurrency when every level passes")
	}
	if res.EffectiveConcurrency == 0 {
		t.Fatalf("expected a non-zero effective concurrency")
	}
	if res.RecommendedCeiling > res.EffectiveConcurrency {
		t.Fatalf("recommended ceiling %d should not exceed effective concurrency %d",
			res.RecommendedCeiling, res.EffectiveConcurrency)
	}
}

func TestRunFirstLevelFailsYieldsEmptyResult(t *testing.T) {
	q := newTestQueue()
	defer q.Shutdown(time.Second)

	p := New(q, alwaysFailCaller{}, testConfig())
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MaxConcurrency != 0 || res.EffectiveConcurrency != 0 {
		t.Fatalf("expected zero max/effective concurrency, got %+v", res)
	}
	if res.Diagnostic == "" {
		t.Fatalf("expected a diagnostic message")
	}
}

func TestRunCancellationYieldsPartialResult(t *testing.T) {
	q := newTestQueue()
	defer q.Shutdown(time.Second)

	cfg := testConfig()
	cfg.WarmupDuration = 0
	cfg.TestDuration = 200 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	p := New(q, alwaysPassCaller{}, cfg)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res, err := p.Run(ctx)
	if err != nil {
		t.Fatalf("expected no error on cancellation, got %v", err)
	}
	_ = res // partial result; no panics/hangs is the assertion that matters here
}

func TestRunBisectionNarrowsToTolerance(t *testing.T) {
	q := newTestQueue()
	defer q.Shutdown(time.Second)

	caller := &concurrencyGatedCaller{limit: 3}
	cfg := testConfig()
	p := New(q, caller, cfg)

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MaxConcurrency == 0 {
		t.Fatalf("expected a non-zero max concurrency, got %+v", res)
	}
	if res.MaxConcurrency > int(caller.limit)+cfg.BisectTolerance {
		t.Fatalf("expected bisection to converge near the gate limit %d, got max_concurrency=%d",
			caller.limit, res.MaxConcurrency)
	}
	sawFailure := false
	for i := 1; i < len(res.Levels); i++ {
		if !res.Levels[i].Verdict.Pass {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Fatalf("expected growth to record at least one failing level before bisecting")
	}
}
