// Package report renders a Probe Result as a console text table: one
// row per concurrency level, a summary line of the derived headline
// numbers. A --json mode bypasses this and marshals the Probe Result
// directly (see cmd/qprobe).
//
// Grounded on the teacher's cmd/summarize/summarize.go, which reduces a
// set of measurements into a rendered artifact (there, a gnuplot
// script and PNG; here, an aligned text table, since this harness's
// console rendering is a fixed-contract collaborator rather than a
// plotting pipeline — spec §1, §6).
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/queueprobe/qprobe/internal/prober"
)

// WriteText renders a ProbeResult as an aligned text table followed by
// a one-line summary.
func WriteText(w io.Writer, res *prober.ProbeResult) {
	if res.Diagnostic != "" {
		fmt.Fprintln(w, "diagnostic:", res.Diagnostic)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "K\tSUCCESS%\tP50(ms)\tP99(ms)\tTHROUGHPUT\tSLO\tHTTP2-TO\tSERVER-TO")
	for _, lvl := range res.Levels {
		verdict := "PASS"
		if !lvl.Verdict.Pass {
			verdict = "FAIL"
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%.2f\t%.2f\t%.1f\t%s\t%d\t%d\n",
			lvl.K,
			lvl.Aggregate.Totals.SuccessRate*100,
			msFromNanos(lvl.Aggregate.Latency.P50),
			msFromNanos(lvl.Aggregate.Latency.P99),
			lvl.Aggregate.Totals.Throughput,
			verdict,
			lvl.Aggregate.Totals.Http2LayerTimeouts,
			lvl.Aggregate.Totals.ServerLayerTimeouts,
		)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nmax_concurrency=%d effective_concurrency=%d recommended_ceiling=%d saturated_throughput=%.1f req/s\n",
		res.MaxConcurrency, res.EffectiveConcurrency, res.RecommendedCeiling, res.SaturatedThroughput)
}

func msFromNanos(ns float64) float64 {
	return ns / 1e6
}
