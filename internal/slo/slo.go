// Package slo implements the SLO Evaluator (spec §4.H): a pure,
// deterministic two-predicate pass/fail judgment over a Concurrency
// Test Result's aggregated totals and latency distribution.
package slo

import (
	"fmt"
	"strings"

	"github.com/queueprobe/qprobe/internal/aggregator"
)

// Objective is the SLO pair (success-rate floor, P99 ceiling in
// milliseconds) an operator configures (spec §4.H, §6).
type Objective struct {
	MinSuccessRate float64
	MaxP99Millis   float64
}

// Verdict carries the pass/fail result and, on failure, a violation
// string enumerating each failed predicate with its observed and
// threshold values (spec §4.H).
type Verdict struct {
	Pass      bool
	Violation string
}

// Evaluate applies obj to res. Pure: given the same inputs it always
// returns the same Verdict, and raising MaxP99Millis or lowering
// MinSuccessRate can never turn a pass into a fail (spec §8).
func Evaluate(obj Objective, res aggregator.Result) Verdict {
	p99ms := res.Latency.P99 / 1000 / 1000 // Latency samples are nanoseconds.
	successOK := res.Totals.SuccessRate >= obj.MinSuccessRate
	p99OK := p99ms <= obj.MaxP99Millis

	if successOK && p99OK {
		return Verdict{Pass: true}
	}

	var violations []string
	if !successOK {
		violations = append(violations, fmt.Sprintf(
			"success_rate %.4f below floor %.4f", res.Totals.SuccessRate, obj.MinSuccessRate))
	}
	if !p99OK {
		violations = append(violations, fmt.Sprintf(
			"p99 %.2fms above ceiling %.2fms", p99ms, obj.MaxP99Millis))
	}
	return Verdict{Pass: false, Violation: strings.Join(violations, "; ")}
}
