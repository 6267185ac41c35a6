// Package rpcclient implements the Channel-Pool Client (spec §4.D): N
// independent gRPC channels to the same address, round-robin dispatch
// across them, and a per-call deadline. Each channel is additionally
// configured to open multiple underlying HTTP/2 connections rather than
// multiplexing everything over one (spec §9) via a manual resolver and
// the round_robin balancer — see resolver.go.
//
// Grounded on the per-connection grpc.Dial loop in the pack's
// strest-grpc load generator (one *grpc.ClientConn per logical
// connection, a pool of them dispatching independently), generalized
// from N separately-dialed connections to N channels each fanned out
// over multiple real HTTP/2 connections.
package rpcclient

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/queueprobe/qprobe/internal/workitem"
	qprobepb "github.com/queueprobe/qprobe/proto"
)

// Config parameterizes the pool (spec §4.D, §6.4, §9).
type Config struct {
	Address         string
	ChannelPoolSize int
	ConnsPerChannel int
	RequestTimeout  time.Duration
}

// Pool holds N gRPC channels to the same address and round-robins calls
// across them.
type Pool struct {
	cfg     Config
	conns   []*grpc.ClientConn
	clients []qprobepb.BenchServiceClient
	counter uint64
}

// Dial builds the pool, issuing ChannelPoolSize independent
// grpc.Dial calls (spec §4.D: "Creates N transport channels to the same
// address on construction").
func Dial(cfg Config) (*Pool, error) {
	if cfg.ChannelPoolSize < 1 {
		cfg.ChannelPoolSize = 1
	}
	if cfg.ConnsPerChannel < 1 {
		cfg.ConnsPerChannel = 1
	}

	p := &Pool{cfg: cfg}
	for i := 0; i < cfg.ChannelPoolSize; i++ {
		conn, err := dialChannel(cfg.Address, cfg.ConnsPerChannel)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("rpcclient: dial channel %d: %w", i, err)
		}
		p.conns = append(p.conns, conn)
		p.clients = append(p.clients, qprobepb.NewBenchServiceClient(conn))
	}
	return p, nil
}

func dialChannel(address string, connsPerChannel int) (*grpc.ClientConn, error) {
	target := multiconnResolverScheme + ":///" + address
	return grpc.Dial(
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultServiceConfig(fmt.Sprintf(`{"loadBalancingConfig": [{"%s":{}}]}`, "round_robin")),
		grpc.WithResolvers(newMulticonnResolverBuilder(address, connsPerChannel)),
	)
}

// Close disposes every channel in the pool.
func (p *Pool) Close() {
	for _, c := range p.conns {
		_ = c.Close()
	}
	p.conns = nil
	p.clients = nil
}

// Call issues one unary Process RPC against the next channel in
// round-robin order (spec §4.D). The caller's ctx supplies cancellation;
// Call itself attaches the per-call deadline.
func (p *Pool) Call(ctx context.Context, requestID string) workitem.Outcome {
	idx := atomic.AddUint64(&p.counter, 1) - 1
	client := p.clients[idx%uint64(len(p.clients))]

	deadline := p.cfg.RequestTimeout
	if deadline <= 0 {
		deadline = 200 * time.Millisecond
	}
	callCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	sendTicks := workitem.NowTicks()
	resp, err := client.Process(callCtx, &qprobepb.ProcessRequest{
		RequestId:      requestID,
		ClientSendTime: sendTicks,
	})
	recvTicks := workitem.NowTicks()

	return classify(ctx, resp, err, recvTicks-sendTicks)
}

// classify implements the outcome mapping in spec §4.D.
func classify(callerCtx context.Context, resp *qprobepb.ProcessResponse, err error, latency int64) workitem.Outcome {
	if err == nil && resp != nil && resp.Success {
		return workitem.Outcome{
			Kind:            workitem.KindSuccess,
			Latency:         latency,
			TimelinePresent: true,
			Timeline: workitem.Timeline{
				ArrivalTime:  resp.Timeline.GetArrivalTime(),
				EnqueueTime:  resp.Timeline.GetEnqueueTime(),
				DequeueTime:  resp.Timeline.GetDequeueTime(),
				CompleteTime: resp.Timeline.GetCompleteTime(),
			},
		}
	}

	if callerCtx.Err() != nil {
		return workitem.Outcome{Kind: workitem.KindTransportError, Layer: workitem.ClientCancelled, Err: callerCtx.Err()}
	}

	switch status.Code(err) {
	case codes.DeadlineExceeded:
		return workitem.Outcome{Kind: workitem.KindTimeout, Layer: workitem.Http2ConnectionLayer, Err: err}
	case codes.Canceled:
		return workitem.Outcome{Kind: workitem.KindTimeout, Layer: workitem.ClientCancelled, Err: err}
	default:
		return workitem.Outcome{Kind: workitem.KindTransportError, Err: err}
	}
}
