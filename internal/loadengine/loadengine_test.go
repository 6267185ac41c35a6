package loadengine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/queueprobe/qprobe/internal/workitem"
)

type trackingCaller struct {
	inFlight int64
	maxSeen  int64
	delay    time.Duration
}

func (c *trackingCaller) Call(ctx context.Context, requestID string) workitem.Outcome {
	cur := atomic.AddInt64(&c.inFlight, 1)
	for {
		max := atomic.LoadInt64(&c.maxSeen)
		if cur <= max || atomic.CompareAndSwapInt64(&c.maxSeen, max, cur) {
			break
		}
	}
	time.Sleep(c.delay)
	atomic.AddInt64(&c.inFlight, -1)
	return workitem.Outcome{
		Kind:            workitem.KindSuccess,
		TimelinePresent: true,
		Timeline:        workitem.Timeline{EnqueueTime: 1, DequeueTime: 2},
	}
}

func TestRunNeverExceedsK(t *testing.T) {
	c := &trackingCaller{delay: 5 * time.Millisecond}
	res := Run(context.Background(), c, 10, 100*time.Millisecond)

	if c.maxSeen > 10 {
		t.Fatalf("observed %d in flight, want <= 10", c.maxSeen)
	}
	if res.Total == 0 {
		t.Fatalf("expected at least one completed call")
	}
	if res.SuccessCount != res.Total {
		t.Fatalf("expected all calls to succeed, got %d/%d", res.SuccessCount, res.Total)
	}
	if len(res.SuccessQueueWait) != res.SuccessCount {
		t.Fatalf("expected one queue-wait sample per success")
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	c := &trackingCaller{delay: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Run(ctx, c, 5, time.Second)
	if res.Total != 0 {
		t.Fatalf("expected no calls to start after immediate cancellation, got %d", res.Total)
	}
}
