// Command qprobe drives the adaptive concurrency prober against either
// an embedded in-process gRPC server or an external one (SPEC_FULL
// §6.4). Flags and environment variables are layered by
// internal/config; the CLI boundary itself logs with glog, matching the
// teacher's cmd/summarize/summarize.go and go/src/goclient.go, while
// every package below internal/config stays on the lighter
// env.Print/env.Fatal (see env/env.go doc comment for the rationale).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/queueprobe/qprobe/env"
	"github.com/queueprobe/qprobe/internal/config"
	"github.com/queueprobe/qprobe/internal/prober"
	"github.com/queueprobe/qprobe/internal/report"
	"github.com/queueprobe/qprobe/internal/rpcclient"
	"github.com/queueprobe/qprobe/internal/rpcserver"
	"github.com/queueprobe/qprobe/internal/syntheticwork"
	"github.com/queueprobe/qprobe/internal/workqueue"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		glog.Errorf("qprobe: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	settings, err := config.Parse(args)
	if err != nil {
		return fmt.Errorf("parsing configuration: %w", err)
	}
	// --verbose gates env.Print for every core package below the CLI
	// boundary; env.Verbose otherwise only reflects QPROBE_VERBOSE.
	env.Verbose = settings.Verbose

	work := syntheticwork.New(settings.WorkMinUs, settings.WorkMaxMs, time.Now().UnixNano())
	queue := workqueue.New(work)
	defer queue.Shutdown(5 * time.Second)

	address := settings.ExternalServer
	var srv *rpcserver.Server
	if address == "" {
		srv = rpcserver.New(queue)
		addr, err := srv.Listen(settings.Port, uint32(settings.MaxConcurrentStreams))
		if err != nil {
			return fmt.Errorf("starting embedded server: %w", err)
		}
		defer srv.Stop()
		address = addr
		glog.Infof("embedded server listening on %s", address)
	}

	settings.Client.Address = address
	pool, err := rpcclient.Dial(settings.Client)
	if err != nil {
		return fmt.Errorf("dialing channel pool: %w", err)
	}
	defer pool.Close()

	// An operator hitting Ctrl-C mid-probe (spec §8 scenario 4) cancels
	// the run the same way a caller-cancelled RPC does further down the
	// stack: Run/RunManual return whatever levels completed rather than
	// an error.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := prober.New(queue, pool, settings.Prober)

	var result *prober.ProbeResult
	if settings.Mode == "manual" && len(settings.ManualConcurrency) > 0 {
		result, err = p.RunManual(ctx, settings.ManualConcurrency)
	} else {
		result, err = p.Run(ctx)
	}
	if err != nil {
		return fmt.Errorf("running probe: %w", err)
	}

	if settings.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	report.WriteText(os.Stdout, result)
	return nil
}
