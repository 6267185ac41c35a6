package rpcclient

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/queueprobe/qprobe/internal/workitem"
	qprobepb "github.com/queueprobe/qprobe/proto"
)

func TestClassifySuccess(t *testing.T) {
	resp := &qprobepb.ProcessResponse{
		Success: true,
		Timeline: &qprobepb.ServerTimeline{
			ArrivalTime: 1, EnqueueTime: 2, DequeueTime: 3, CompleteTime: 4,
		},
	}
	o := classify(context.Background(), resp, nil, 123)
	if o.Kind != workitem.KindSuccess {
		t.Fatalf("expected success, got %v", o.Kind)
	}
	if !o.Success() {
		t.Fatalf("expected Outcome.Success() true")
	}
	if o.Latency != 123 {
		t.Fatalf("expected latency 123, got %d", o.Latency)
	}
}

func TestClassifyDeadlineExceededIsConnectionLayerTimeout(t *testing.T) {
	err := status.Error(codes.DeadlineExceeded, "deadline exceeded")
	o := classify(context.Background(), nil, err, 0)
	if o.Kind != workitem.KindTimeout || o.Layer != workitem.Http2ConnectionLayer {
		t.Fatalf("expected Timeout(Http2ConnectionLayer), got kind=%v layer=%v", o.Kind, o.Layer)
	}
}

func TestClassifyCancelledStatus(t *testing.T) {
	err := status.Error(codes.Canceled, "cancelled")
	o := classify(context.Background(), nil, err, 0)
	if o.Kind != workitem.KindTimeout || o.Layer != workitem.ClientCancelled {
		t.Fatalf("expected Timeout(ClientCancelled), got kind=%v layer=%v", o.Kind, o.Layer)
	}
}

func TestClassifyCallerCancellationBeforeReply(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := classify(ctx, nil, errors.New("rpc error"), 0)
	if o.Kind != workitem.KindTransportError || o.Layer != workitem.ClientCancelled {
		t.Fatalf("expected TransportError(ClientCancelled), got kind=%v layer=%v", o.Kind, o.Layer)
	}
}

func TestClassifyOtherStatusIsTransportError(t *testing.T) {
	err := status.Error(codes.Unavailable, "unavailable")
	o := classify(context.Background(), nil, err, 0)
	if o.Kind != workitem.KindTransportError {
		t.Fatalf("expected TransportError, got %v", o.Kind)
	}
}
