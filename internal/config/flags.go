package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/queueprobe/qprobe/env"
	"github.com/queueprobe/qprobe/internal/prober"
	"github.com/queueprobe/qprobe/internal/rpcclient"
	"github.com/queueprobe/qprobe/internal/slo"
)

// Settings holds every flag-derived value needed to wire the harness
// together (SPEC_FULL §6.4). Environment variables supply defaults read
// before flag parsing (matching the teacher's env+flag layering in
// cmd/controller/controller.go), so flags win over environment, which
// wins over the package default.
type Settings struct {
	Mode              string
	ManualConcurrency []int
	ExternalServer    string

	Port                 int
	MaxConcurrentStreams uint

	Client    rpcclient.Config
	Prober    prober.Config
	Verbose   bool
	JSON      bool
	WorkMinUs float64
	WorkMaxMs float64
}

// Parse builds a Settings from the process's command-line arguments
// (os.Args[1:], via the standard library flag package — matching the
// teacher's own CLI surface, which never reaches for a flags library
// beyond flag).
func Parse(args []string) (*Settings, error) {
	fs := flag.NewFlagSet("qprobe", flag.ContinueOnError)

	def := prober.DefaultConfig()

	mode := fs.String("mode", "auto", "auto|manual")
	concurrency := fs.String("concurrency", "", "manual-mode comma-separated concurrency levels, e.g. 20,40,80,160")
	externalServer := fs.String("external-server", "", "skip the embedded server and dial this address instead")

	successRate := fs.Float64("success-rate", def.Objective.MinSuccessRate, "SLO success-rate floor in (0,1]")
	p99Ms := fs.Float64("p99-threshold-ms", def.Objective.MaxP99Millis, "SLO P99 ceiling in milliseconds")

	warmupDuration := fs.Duration("warmup-duration", def.WarmupDuration, "warm phase duration")
	testDuration := fs.Duration("test-duration", def.TestDuration, "per-level test duration")
	stabilityDuration := fs.Duration("stability-duration", def.StabilityDuration, "stability-verification duration")

	port := fs.Int("port", envIntDefault("QPROBE_PORT", 0), "embedded server port (0 = OS-assigned)")
	channelPoolSize := fs.Int("channel-pool-size", 8, "number of independent gRPC channels")
	connsPerChannel := fs.Int("conns-per-channel", 4, "underlying HTTP/2 connections per channel (spec §9)")
	requestTimeout := fs.Duration("request-timeout", 200*time.Millisecond, "per-call client deadline")
	maxConcurrentStreams := fs.Uint("max-concurrent-streams", 500, "per-connection HTTP/2 stream cap")

	initialConcurrency := fs.Int("initial-concurrency", def.InitialConcurrency, "starting K for exponential growth")
	maxConcurrency := fs.Int("max-concurrency", def.MaxConcurrency, "growth ceiling")
	bisectTolerance := fs.Int("bisect-tolerance", def.BisectTolerance, "bisection window width at which to stop")
	ceilingFactor := fs.Float64("recommended-ceiling-factor", def.CeilingFactor, "safety factor applied to effective concurrency")

	workMinUs := fs.Float64("work-min-us", 10, "synthetic work minimum, microseconds")
	workMaxMs := fs.Float64("work-max-ms", 50, "synthetic work maximum, milliseconds")

	verbose := fs.Bool("verbose", env.Verbose, "verbose core logging")
	asJSON := fs.Bool("json", false, "emit the final report as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	s := &Settings{
		Mode:                 *mode,
		ExternalServer:       *externalServer,
		Port:                 *port,
		MaxConcurrentStreams: *maxConcurrentStreams,
		Verbose:              *verbose,
		JSON:                 *asJSON,
		WorkMinUs:            *workMinUs,
		WorkMaxMs:            *workMaxMs,
		Client: rpcclient.Config{
			ChannelPoolSize: *channelPoolSize,
			ConnsPerChannel: *connsPerChannel,
			RequestTimeout:  *requestTimeout,
		},
		Prober: prober.Config{
			Objective:              slo.Objective{MinSuccessRate: *successRate, MaxP99Millis: *p99Ms},
			WarmupConcurrency:      def.WarmupConcurrency,
			WarmupDuration:         *warmupDuration,
			InitialConcurrency:     *initialConcurrency,
			MaxConcurrency:         *maxConcurrency,
			TestDuration:           *testDuration,
			StabilityDuration:      *stabilityDuration,
			BisectTolerance:        *bisectTolerance,
			CeilingFactor:          *ceilingFactor,
			InterferenceThresholds: def.InterferenceThresholds,
		},
	}

	if *mode == "manual" && *concurrency != "" {
		levels, err := parseIntCSV(*concurrency)
		if err != nil {
			return nil, fmt.Errorf("config: --concurrency: %w", err)
		}
		s.ManualConcurrency = levels
	}

	if *successRate <= 0 || *successRate > 1 {
		return nil, fmt.Errorf("config: --success-rate must be in (0,1], got %v", *successRate)
	}

	return s, nil
}

func parseIntCSV(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid concurrency level %q: %w", p, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no concurrency levels given")
	}
	return out, nil
}

func envIntDefault(name string, def int) int {
	return env.GetEnvInt(name, def)
}
