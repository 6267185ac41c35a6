package rpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/queueprobe/qprobe/internal/workitem"
)

// watchCancel asserts it's cancellation signal if ctx is done before the
// item resolves. It exits as soon as either happens, so it never
// outlives one RPC call.
func watchCancel(ctx context.Context, it *workitem.Item) {
	go func() {
		select {
		case <-ctx.Done():
			it.MarkCancelled()
		case <-waitChan(it):
		}
	}()
}

// waitChan adapts Item.Wait (a blocking call) into a channel usable in
// a select, so the handler can race it against ctx.Done().
func waitChan(it *workitem.Item) <-chan workitem.Outcome {
	ch := make(chan workitem.Outcome, 1)
	go func() {
		ch <- it.Wait()
	}()
	return ch
}

// statusCancelled builds the terminal status for an in-queue or
// in-process cancellation. The server never returns deadline-exceeded
// itself (spec §4.C) — that classification is purely a client-side
// concept, derived from the client's own deadline, not anything the
// server observes.
func statusCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Canceled, "cancelled")
}
