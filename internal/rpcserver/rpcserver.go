// Package rpcserver implements the RPC Server Adapter (spec §4.C): the
// gRPC-facing half of the system under test. It accepts a unary
// Process call, hands the request to internal/workqueue as a Work
// Item, awaits completion, and returns the server's timeline.
//
// Grounded on the teacher's loopback gRPC server in
// clientlib/fake_collector.go (runGrpc/stopGrpc/grpcShim): a
// net.Listen on a local TCP port, a *grpc.Server, and a thin shim type
// implementing the generated server interface.
package rpcserver

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/queueprobe/qprobe/internal/workitem"
	"github.com/queueprobe/qprobe/internal/workqueue"
	qprobepb "github.com/queueprobe/qprobe/proto"
)

// Server wires a *workqueue.Queue to the generated BenchService gRPC
// interface.
type Server struct {
	qprobepb.UnimplementedBenchServiceServer

	queue *workqueue.Queue
	grpc  *grpc.Server
}

// New builds a Server over an existing Queue. The Queue is owned by the
// caller (the prober resets its stats between concurrency levels; the
// server adapter never does).
func New(queue *workqueue.Queue) *Server {
	return &Server{queue: queue}
}

// Listen binds a loopback TCP listener at the given port (0 = OS-
// assigned) and starts serving in a background goroutine. Returns the
// address actually bound, so a caller requesting port 0 can discover
// the assigned port. maxConcurrentStreams configures the per-connection
// HTTP/2 stream cap (spec §6, "default recommended ≥ 500"); 0 leaves
// the gRPC default.
func (s *Server) Listen(port int, maxConcurrentStreams uint32) (addr string, err error) {
	lis, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return "", fmt.Errorf("rpcserver: listen: %w", err)
	}

	var opts []grpc.ServerOption
	if maxConcurrentStreams > 0 {
		opts = append(opts, grpc.MaxConcurrentStreams(maxConcurrentStreams))
	}
	s.grpc = grpc.NewServer(opts...)
	qprobepb.RegisterBenchServiceServer(s.grpc, s)

	go func() {
		// A Serve error after a graceful Stop is expected (the listener
		// closes); only unexpected failures matter, and there is no
		// channel left to report them on once probing has begun, so they
		// are dropped here rather than escalated to env.Fatal, which
		// would crash mid-probe for an ordinary shutdown race.
		_ = s.grpc.Serve(lis)
	}()

	return lis.Addr().String(), nil
}

// Stop gracefully drains in-flight RPCs and stops the listener.
func (s *Server) Stop() {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
}

// Process implements the generated BenchServiceServer interface (spec
// §4.C). It never blocks the gRPC I/O goroutine on the queue itself —
// Enqueue is non-blocking — only on the Work Item's own completion
// signal, which is this handler's own suspension point.
func (s *Server) Process(ctx context.Context, req *qprobepb.ProcessRequest) (*qprobepb.ProcessResponse, error) {
	arrival := workitem.NowTicks()
	it := workitem.NewItem(req.RequestId, req.ClientSendTime, arrival)

	// Link the call's cancellation into the Work Item (spec §4.C): the
	// worker checks this exactly once, at dequeue.
	watchCancel(ctx, it)

	s.queue.Enqueue(it, workitem.NowTicks())

	select {
	case <-ctx.Done():
		it.MarkCancelled()
		return nil, statusCancelled(ctx)
	case o := <-waitChan(it):
		if o.Kind == workitem.KindCancelled {
			return nil, statusCancelled(ctx)
		}
		tl := o.Timeline
		return &qprobepb.ProcessResponse{
			RequestId:           req.RequestId,
			Success:             o.Success(),
			QueueDepthAtEnqueue: it.QueueDepthAtEnqueue,
			Timeline: &qprobepb.ServerTimeline{
				ArrivalTime:  tl.ArrivalTime,
				EnqueueTime:  tl.EnqueueTime,
				DequeueTime:  tl.DequeueTime,
				CompleteTime: tl.CompleteTime,
			},
		}, nil
	}
}
