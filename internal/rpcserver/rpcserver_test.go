package rpcserver

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/queueprobe/qprobe/internal/syntheticwork"
	"github.com/queueprobe/qprobe/internal/workqueue"
	qprobepb "github.com/queueprobe/qprobe/proto"
)

func TestProcessRoundTripsTimeline(t *testing.T) {
	queue := workqueue.New(syntheticwork.New(10, 1, 1))
	defer queue.Shutdown(time.Second)

	s := New(queue)
	addr, err := s.Listen(0, 0)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer s.Stop()

	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := qprobepb.NewBenchServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := client.Process(ctx, &qprobepb.ProcessRequest{RequestId: "r1", ClientSendTime: 1})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success=true, got %+v", resp)
	}
	if resp.RequestId != "r1" {
		t.Fatalf("expected echoed request_id r1, got %q", resp.RequestId)
	}
	tl := resp.Timeline
	if tl == nil {
		t.Fatalf("expected a timeline")
	}
	if !(tl.ArrivalTime <= tl.EnqueueTime && tl.EnqueueTime <= tl.DequeueTime && tl.DequeueTime <= tl.CompleteTime) {
		t.Fatalf("timeline not monotonic: %+v", tl)
	}
}

func TestProcessConcurrentCallsAllSucceed(t *testing.T) {
	queue := workqueue.New(syntheticwork.New(10, 1, 2))
	defer queue.Shutdown(time.Second)

	s := New(queue)
	addr, err := s.Listen(0, 0)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer s.Stop()

	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := qprobepb.NewBenchServiceClient(conn)

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := client.Process(ctx, &qprobepb.ProcessRequest{RequestId: "r"})
			errs <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent call %d failed: %v", i, err)
		}
	}
}
