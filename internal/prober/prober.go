// Package prober implements the Adaptive Concurrency Prober (spec
// §4.F): warm, grow exponentially until an SLO breach, bisect the
// failure boundary, verify stability there, then derive the Probe
// Result's headline numbers.
//
// Grounded on the teacher's phased calibration loop in
// cmd/controller/controller.go (recalibrate/warmup/estimateWorkCost/
// sanityCheckWork/measureSpanCost): a sequence of named phases, each
// logged via a Print call, each able to bail before the next phase
// runs.
package prober

import (
	"context"
	"math"
	"time"

	"github.com/queueprobe/qprobe/common"
	"github.com/queueprobe/qprobe/env"
	"github.com/queueprobe/qprobe/internal/aggregator"
	"github.com/queueprobe/qprobe/internal/loadengine"
	"github.com/queueprobe/qprobe/internal/resources"
	"github.com/queueprobe/qprobe/internal/slo"
	"github.com/queueprobe/qprobe/internal/workqueue"
)

// Config parameterizes the probe (spec §4.F, §9 Open Question (c)).
type Config struct {
	Objective slo.Objective

	WarmupConcurrency int
	WarmupDuration    time.Duration

	InitialConcurrency int
	MaxConcurrency     int
	TestDuration       time.Duration

	StabilityDuration time.Duration

	// BisectTolerance is the window width, in units of K, at which
	// bisection stops narrowing (spec §4.F step 3 default: 10).
	BisectTolerance int
	// CeilingFactor scales effective_concurrency down to
	// recommended_ceiling (spec §3, §9 default: 0.8).
	CeilingFactor float64

	InterferenceThresholds common.InterferenceThresholds
}

// DefaultConfig returns the spec's documented defaults (spec §4.F, §9).
func DefaultConfig() Config {
	return Config{
		Objective:              slo.Objective{MinSuccessRate: 0.999, MaxP99Millis: 200},
		WarmupConcurrency:      10,
		WarmupDuration:         5 * time.Second,
		InitialConcurrency:     20,
		MaxConcurrency:         10000,
		TestDuration:           10 * time.Second,
		StabilityDuration:      30 * time.Second,
		BisectTolerance:        10,
		CeilingFactor:          0.8,
		InterferenceThresholds: common.DefaultInterferenceThresholds(),
	}
}

// LevelResult is one Concurrency Test Result (spec §3): K, T, the
// aggregated totals/distributions, the SLO verdict, and the queue's
// resource snapshot for that level.
type LevelResult struct {
	K                     int
	Duration              time.Duration
	Aggregate             aggregator.Result
	Verdict               slo.Verdict
	PeakQueueDepth        int64
	MaxQueueWaitNanos     int64
	InterferenceSuspected bool
}

// ProbeResult is the ordered list of levels plus the derived headline
// numbers (spec §3).
type ProbeResult struct {
	Levels               []LevelResult
	MaxConcurrency       int
	EffectiveConcurrency int
	SaturatedThroughput  float64
	RecommendedCeiling   int
	Diagnostic           string
}

// Caller is what the load engine needs to issue one call; satisfied by
// *rpcclient.Pool.
type Caller = loadengine.Caller

// Prober drives loadengine.Run at successive concurrency levels against
// a shared Queue and Caller.
type Prober struct {
	queue  *workqueue.Queue
	caller Caller
	cfg    Config
}

// New builds a Prober over an existing queue and caller.
func New(queue *workqueue.Queue, caller Caller, cfg Config) *Prober {
	return &Prober{queue: queue, caller: caller, cfg: cfg}
}

// Run executes the five phases in order (spec §4.F) and returns the
// Probe Result. The returned error is reserved for harness-level
// failures; an SLO failure at every level is data, not an error (spec
// §7). Cancellation via ctx yields a partial Probe Result with whatever
// levels completed — Run itself never returns an error for that case.
func (p *Prober) Run(ctx context.Context) (*ProbeResult, error) {
	res := &ProbeResult{}

	// Phase 1: warm.
	env.Print("prober: warm phase at concurrency", p.cfg.WarmupConcurrency, "for", p.cfg.WarmupDuration)
	p.runLevel(ctx, p.cfg.WarmupConcurrency, p.cfg.WarmupDuration)
	p.queue.ResetStats()
	if ctx.Err() != nil {
		return res, nil
	}

	// Phase 2: exponential growth.
	env.Print("prober: exponential growth phase, starting at concurrency", p.cfg.InitialConcurrency)
	lastGood := 0
	firstBad := -1
	k := p.cfg.InitialConcurrency
	if k < 1 {
		k = 1
	}
	for {
		lvl := p.runLevelRecorded(ctx, res, k, p.cfg.TestDuration)
		if ctx.Err() != nil {
			return res, nil
		}
		env.Print("prober: growth level", k, "pass =", lvl.Verdict.Pass)
		if !lvl.Verdict.Pass {
			firstBad = k
			break
		}
		lastGood = k
		if k >= p.cfg.MaxConcurrency {
			break
		}
		k *= 2
		if k > p.cfg.MaxConcurrency {
			k = p.cfg.MaxConcurrency
		}
	}

	if lastGood == 0 {
		// The very first exponential step failed SLO (spec §4.F edge case).
		res.Diagnostic = "first concurrency level failed SLO; no viable operating point found"
		env.Print("prober:", res.Diagnostic)
		return res, nil
	}

	// Phase 3: bisection, only if growth actually hit a failure before
	// exhausting max_concurrency.
	if firstBad > 0 && firstBad-lastGood > p.cfg.BisectTolerance {
		env.Print("prober: bisection phase, narrowing between", lastGood, "and", firstBad)
		low, high := lastGood, firstBad
		for high-low > p.cfg.BisectTolerance {
			mid := (low + high) / 2
			lvl := p.runLevelRecorded(ctx, res, mid, p.cfg.TestDuration)
			if ctx.Err() != nil {
				return res, nil
			}
			env.Print("prober: bisection probe", mid, "pass =", lvl.Verdict.Pass)
			if lvl.Verdict.Pass {
				low = mid
				lastGood = mid
			} else {
				high = mid
			}
		}
	}

	// Phase 4: stability verification.
	env.Print("prober: stability verification at concurrency", lastGood, "for", p.cfg.StabilityDuration)
	stabilityLvl := p.runLevelRecorded(ctx, res, lastGood, p.cfg.StabilityDuration)
	if ctx.Err() != nil {
		return res, nil
	}
	maxConcurrency := lastGood
	if !stabilityLvl.Verdict.Pass {
		maxConcurrency = int(math.Floor(float64(lastGood) * 0.9))
		env.Print("prober: stability check failed at", lastGood, "; reducing ceiling to", maxConcurrency)
	}

	// Phase 5: derivation.
	env.Print("prober: derivation phase")
	res.MaxConcurrency = maxConcurrency
	effective := 0
	var throughputAtEffective float64
	for _, lvl := range res.Levels {
		if lvl.Verdict.Pass && lvl.K > effective {
			effective = lvl.K
			throughputAtEffective = lvl.Aggregate.Totals.Throughput
		}
	}
	res.EffectiveConcurrency = effective
	res.SaturatedThroughput = throughputAtEffective
	res.RecommendedCeiling = int(math.Floor(p.cfg.CeilingFactor * float64(effective)))

	return res, nil
}

// RunManual runs exactly the given concurrency levels in order, each
// for TestDuration, skipping the adaptive search entirely (spec §6,
// "--concurrency <csv>" manual mode). Derivation (step 5) still applies:
// effective_concurrency, saturated_throughput, and recommended_ceiling
// are computed the same way from whichever levels passed SLO.
func (p *Prober) RunManual(ctx context.Context, levels []int) (*ProbeResult, error) {
	res := &ProbeResult{}
	env.Print("prober: manual phase, levels =", levels)
	for _, k := range levels {
		lvl := p.runLevelRecorded(ctx, res, k, p.cfg.TestDuration)
		if ctx.Err() != nil {
			return res, nil
		}
		env.Print("prober: manual level", k, "pass =", lvl.Verdict.Pass)
	}

	effective := 0
	var throughputAtEffective float64
	for _, lvl := range res.Levels {
		if lvl.Verdict.Pass && lvl.K > effective {
			effective = lvl.K
			throughputAtEffective = lvl.Aggregate.Totals.Throughput
		}
	}
	res.MaxConcurrency = effective
	res.EffectiveConcurrency = effective
	res.SaturatedThroughput = throughputAtEffective
	res.RecommendedCeiling = int(math.Floor(p.cfg.CeilingFactor * float64(effective)))
	return res, nil
}

// runLevelRecorded runs one level and appends it to res.Levels.
func (p *Prober) runLevelRecorded(ctx context.Context, res *ProbeResult, k int, d time.Duration) LevelResult {
	lvl := p.runLevel(ctx, k, d)
	res.Levels = append(res.Levels, lvl)
	return lvl
}

// runLevel executes one Concurrency Test Result: reset queue stats,
// snapshot resources, run the load engine for d at concurrency k,
// snapshot again, aggregate, and evaluate the SLO (spec §4.E, §4.G,
// §4.H, §3).
func (p *Prober) runLevel(ctx context.Context, k int, d time.Duration) LevelResult {
	p.queue.ResetStats()
	before := resources.Take()

	lr := loadengine.Run(ctx, p.caller, k, d)

	after := resources.Take()
	agg := aggregator.Aggregate(lr, lr.ActualDuration)
	verdict := slo.Evaluate(p.cfg.Objective, agg)

	return LevelResult{
		K:                     k,
		Duration:              lr.ActualDuration,
		Aggregate:             agg,
		Verdict:               verdict,
		PeakQueueDepth:        p.queue.PeakDepth(),
		MaxQueueWaitNanos:     p.queue.MaxQueueWait(),
		InterferenceSuspected: resources.Interference(before, after, p.cfg.InterferenceThresholds),
	}
}
