package workitem

import (
	"testing"
	"time"
)

func TestResolveIsIdempotent(t *testing.T) {
	it := NewItem("r1", 0, NowTicks())
	it.Resolve(Outcome{Kind: KindSuccess})
	it.Resolve(Outcome{Kind: KindTimeout})

	got := it.Wait()
	if got.Kind != KindSuccess {
		t.Fatalf("expected the first Resolve to win, got Kind=%v", got.Kind)
	}
}

func TestWaitBlocksUntilResolve(t *testing.T) {
	it := NewItem("r1", 0, NowTicks())
	done := make(chan Outcome, 1)
	go func() { done <- it.Wait() }()

	select {
	case <-done:
		t.Fatalf("Wait returned before Resolve was called")
	case <-time.After(20 * time.Millisecond):
	}

	it.Resolve(Outcome{Kind: KindSuccess})
	select {
	case o := <-done:
		if o.Kind != KindSuccess {
			t.Fatalf("expected KindSuccess, got %v", o.Kind)
		}
	case <-time.After(time.Second):
		t.Fatalf("Wait never returned after Resolve")
	}
}

func TestMarkCancelledIsIdempotentAndObservable(t *testing.T) {
	it := NewItem("r1", 0, NowTicks())
	if it.Cancelled() {
		t.Fatalf("expected a fresh item to be uncancelled")
	}
	it.MarkCancelled()
	it.MarkCancelled()
	if !it.Cancelled() {
		t.Fatalf("expected Cancelled() to report true after MarkCancelled")
	}
}

func TestOutcomeSuccessRequiresTimelineAndFlag(t *testing.T) {
	cases := []struct {
		name string
		o    Outcome
		want bool
	}{
		{"bare success kind without timeline", Outcome{Kind: KindSuccess}, false},
		{"success kind with timeline but zero enqueue", Outcome{Kind: KindSuccess, TimelinePresent: true, Timeline: Timeline{DequeueTime: 5}}, false},
		{"success kind with full timeline", Outcome{Kind: KindSuccess, TimelinePresent: true, Timeline: Timeline{EnqueueTime: 1, DequeueTime: 5}}, true},
		{"timeout kind", Outcome{Kind: KindTimeout}, false},
	}
	for _, c := range cases {
		if got := c.o.Success(); got != c.want {
			t.Errorf("%s: Success() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestOutcomeQueueWait(t *testing.T) {
	o := Outcome{Kind: KindSuccess, TimelinePresent: true, Timeline: Timeline{EnqueueTime: 100, DequeueTime: 340}}
	if w := o.QueueWait(); w != 240 {
		t.Fatalf("expected queue wait 240, got %d", w)
	}

	failed := Outcome{Kind: KindTimeout}
	if w := failed.QueueWait(); w != 0 {
		t.Fatalf("expected queue wait 0 for a non-success outcome, got %d", w)
	}
}

func TestNowTicksIsMonotonicallyNondecreasing(t *testing.T) {
	a := NowTicks()
	time.Sleep(time.Millisecond)
	b := NowTicks()
	if b < a {
		t.Fatalf("expected NowTicks to be nondecreasing, got a=%d b=%d", a, b)
	}
}

func TestTimelineSnapshotReflectsStampedFields(t *testing.T) {
	it := NewItem("r1", 0, 10)
	it.Enqueue = 20
	it.Dequeue = 30
	it.Complete = 40

	tl := it.Timeline()
	if tl.ArrivalTime != 10 || tl.EnqueueTime != 20 || tl.DequeueTime != 30 || tl.CompleteTime != 40 {
		t.Fatalf("unexpected timeline snapshot: %+v", tl)
	}
}
