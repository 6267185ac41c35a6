// Package workitem holds the data model shared by the server-side queue
// (internal/workqueue, internal/rpcserver) and the client-side load path
// (internal/rpcclient, internal/loadengine): the Work Item, its immutable
// Server Timeline snapshot, and the Outcome tagged variant a client call
// resolves to.
package workitem

import (
	"sync"
	"sync/atomic"
)

// Item represents one in-flight server-side unit of work. Enqueue stamps
// Enqueue and QueueDepthAtEnqueue; the single queue worker stamps Dequeue
// and Complete. Those are the only two writers, and they write disjoint
// fields, so Item needs no internal lock of its own.
type Item struct {
	RequestID string

	ClientSend int64
	Arrival    int64
	Enqueue    int64
	Dequeue    int64
	Complete   int64

	QueueDepthAtEnqueue int32

	// Cancelled is set by the RPC handler's goroutine when the caller's
	// context is done before the worker dequeues the item. The worker
	// checks it exactly once, at dequeue time (see internal/workqueue).
	cancelled sync32

	done     chan struct{}
	doneOnce sync.Once
	result   Outcome
}

// sync32 is a tiny atomic boolean, avoiding a second lock type for a
// single bit. Kept local to workitem since nothing outside this package
// needs a generic version.
type sync32 struct{ v uint32 }

func (s *sync32) set() bool       { return atomic.CompareAndSwapUint32(&s.v, 0, 1) }
func (s *sync32) get() bool       { return atomic.LoadUint32(&s.v) == 1 }

// NewItem builds a Work Item for a freshly-arrived RPC. arrivalTicks is
// the server handler's own clock reading; clientSendTicks is whatever the
// caller put in the request (used only for diagnostics, never for
// ordering — see the invariants in spec §3).
func NewItem(requestID string, clientSendTicks, arrivalTicks int64) *Item {
	return &Item{
		RequestID:  requestID,
		ClientSend: clientSendTicks,
		Arrival:    arrivalTicks,
		done:       make(chan struct{}),
	}
}

// MarkCancelled asserts the item's cancellation signal. Idempotent.
func (it *Item) MarkCancelled() { it.cancelled.set() }

// Cancelled reports whether the cancellation signal is asserted.
func (it *Item) Cancelled() bool { return it.cancelled.get() }

// Resolve fulfils the item's completion signal exactly once; subsequent
// calls are no-ops, matching the invariant that a Work Item resolves
// exactly once (spec §3).
func (it *Item) Resolve(o Outcome) {
	it.doneOnce.Do(func() {
		it.result = o
		close(it.done)
	})
}

// Wait blocks until the item resolves and returns its Outcome.
func (it *Item) Wait() Outcome {
	<-it.done
	return it.result
}

// Timeline snapshots the item's timestamps. Called after Dequeue/Complete
// are stamped; the returned value is an immutable copy (spec §3, "Server
// Timeline").
func (it *Item) Timeline() Timeline {
	return Timeline{
		ArrivalTime:  it.Arrival,
		EnqueueTime:  it.Enqueue,
		DequeueTime:  it.Dequeue,
		CompleteTime: it.Complete,
	}
}

// Timeline is an immutable snapshot of a Work Item's timestamps, returned
// with a successful response (spec §3).
type Timeline struct {
	ArrivalTime  int64
	EnqueueTime  int64
	DequeueTime  int64
	CompleteTime int64
}

// TimeoutLayer classifies why a Timeout outcome occurred (spec §3, §9).
type TimeoutLayer int

const (
	// Http2ConnectionLayer: the request never reached the server — no
	// timeline is present. This is the deliberate default for a bare
	// deadline-exceeded status; see spec §9.
	Http2ConnectionLayer TimeoutLayer = iota
	// ServerQueueWait: the server-side queue wait dominated.
	ServerQueueWait
	// ServerProcessing: server-side processing dominated.
	ServerProcessing
	// ClientCancelled: the caller gave up (either side).
	ClientCancelled
)

func (l TimeoutLayer) String() string {
	switch l {
	case Http2ConnectionLayer:
		return "http2_connection_layer"
	case ServerQueueWait:
		return "server_queue_wait"
	case ServerProcessing:
		return "server_processing"
	case ClientCancelled:
		return "client_cancelled"
	default:
		return "unknown"
	}
}

// Kind tags the variant carried by an Outcome.
type Kind int

const (
	KindSuccess Kind = iota
	KindTimeout
	KindTransportError
	KindCancelled
)

// Outcome is the tagged variant a client call resolves to (spec §3):
// Success carries latency and the server's timeline; Timeout carries a
// TimeoutLayer classification and the RPC error; TransportError carries
// the RPC error, plus Layer ClientCancelled when the caller's own context
// ended first; Cancelled carries only the tag.
type Outcome struct {
	Kind    Kind
	Latency int64 // nanoseconds; valid when Kind == KindSuccess
	Timeline
	TimelinePresent bool // true only for a successful reply
	Layer           TimeoutLayer
	Err             error
}

// Success iff the client observed a terminal reply with success=true AND
// a timeline with dequeue and enqueue both nonzero (spec §3).
func (o Outcome) Success() bool {
	return o.Kind == KindSuccess && o.TimelinePresent && o.EnqueueTime != 0 && o.DequeueTime != 0
}

// QueueWait is DequeueTime-EnqueueTime for a successful outcome whose
// timeline has both timestamps populated; zero otherwise.
func (o Outcome) QueueWait() int64 {
	if !o.Success() {
		return 0
	}
	return o.DequeueTime - o.EnqueueTime
}
