// Package workqueue implements the single-consumer FIFO queue that
// serializes server-side work (spec §4.B): many RPC handlers enqueue
// concurrently, one dedicated worker goroutine drains the queue and
// invokes internal/syntheticwork on each item. Grounded on the teacher's
// single-reader-goroutine idiom in clientlib/client_controller.go (the
// `go func() { for req := range requestCh { ... } }()` control-serializer
// loop) and its `bench.Fatal`-on-worker-panic policy.
package workqueue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/queueprobe/qprobe/internal/syntheticwork"
	"github.com/queueprobe/qprobe/internal/workitem"
)

// Queue is a FIFO from RPC handlers to one dedicated worker. Unbounded by
// design (spec §9, "Unbounded queue"): a bounded queue would convert queue
// pressure into rejections, hiding the saturation point this harness
// exists to find, so the backlog is a growable slice rather than a
// fixed-capacity channel — the prober is specifically meant to drive this
// backlog deep (spec §4.F, §8.2) and deep backlog must be measured, not
// rejected.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []*workitem.Item
	stopped bool

	work *syntheticwork.Distribution

	peakDepth      int64
	processedCount int64
	cancelledCount int64
	maxQueueWait   int64

	done chan struct{}
}

// New constructs a Queue and launches its single consumer goroutine.
func New(work *syntheticwork.Distribution) *Queue {
	q := &Queue{
		work: work,
		done: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Enqueue stamps EnqueueTime and QueueDepthAtEnqueue, then appends the
// item to the backlog and wakes the worker. Never blocks the caller: the
// backlog grows to hold whatever is enqueued (spec §4.C: "the adapter
// must never block the I/O thread on the queue").
func (q *Queue) Enqueue(it *workitem.Item, enqueueTicks int64) {
	it.Enqueue = enqueueTicks
	q.mu.Lock()
	q.items = append(q.items, it)
	depth := int64(len(q.items))
	q.mu.Unlock()
	it.QueueDepthAtEnqueue = int32(depth)
	casMax(&q.peakDepth, depth)
	q.cond.Signal()
}

// PeakDepth, ProcessedCount, CancelledCount, MaxQueueWait read the four
// running counters via atomic loads (spec §4.B).
func (q *Queue) PeakDepth() int64      { return atomic.LoadInt64(&q.peakDepth) }
func (q *Queue) ProcessedCount() int64 { return atomic.LoadInt64(&q.processedCount) }
func (q *Queue) CancelledCount() int64 { return atomic.LoadInt64(&q.cancelledCount) }
func (q *Queue) MaxQueueWait() int64   { return atomic.LoadInt64(&q.maxQueueWait) }

// ResetStats zeroes the four counters. Safe to call between probe
// levels; it does not drain or reorder items (spec §4.B).
func (q *Queue) ResetStats() {
	atomic.StoreInt64(&q.peakDepth, 0)
	atomic.StoreInt64(&q.processedCount, 0)
	atomic.StoreInt64(&q.cancelledCount, 0)
	atomic.StoreInt64(&q.maxQueueWait, 0)
}

// Shutdown signals no-more-producers and waits for the consumer to drain
// and exit, with a bounded grace period (spec §4.B). Callers must not
// Enqueue after calling Shutdown.
func (q *Queue) Shutdown(grace time.Duration) {
	q.mu.Lock()
	q.stopped = true
	q.mu.Unlock()
	q.cond.Broadcast()
	select {
	case <-q.done:
	case <-time.After(grace):
	}
}

func (q *Queue) run() {
	for {
		it, ok := q.next()
		if !ok {
			close(q.done)
			return
		}
		q.process(it)
	}
}

// next blocks until an item is available or Shutdown has been called with
// an empty backlog, in which case it returns ok=false.
func (q *Queue) next() (*workitem.Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.stopped {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	it := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// Release the backing array once the backlog drains, rather than
		// holding onto whatever capacity the deepest backlog grew to.
		q.items = nil
	}
	return it, true
}

func (q *Queue) process(it *workitem.Item) {
	if it.Cancelled() {
		atomic.AddInt64(&q.cancelledCount, 1)
		it.Resolve(workitem.Outcome{Kind: workitem.KindCancelled})
		return
	}

	dequeueTicks := workitem.NowTicks()
	it.Dequeue = dequeueTicks
	wait := dequeueTicks - it.Enqueue
	casMax(&q.maxQueueWait, wait)

	micros := q.work.Draw()
	syntheticwork.Spend(micros)

	it.Complete = workitem.NowTicks()
	atomic.AddInt64(&q.processedCount, 1)
	it.Resolve(workitem.Outcome{
		Kind:            workitem.KindSuccess,
		TimelinePresent: true,
		Timeline:        it.Timeline(),
	})
}

// casMax atomically stores v into addr if v is greater than the current
// value, retrying on contention (spec §4.B: "updates the running peak
// atomically (CAS loop)").
func casMax(addr *int64, v int64) {
	for {
		cur := atomic.LoadInt64(addr)
		if v <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(addr, cur, v) {
			return
		}
	}
}
