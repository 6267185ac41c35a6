// Package aggregator implements the Result Aggregator (spec §4.G):
// reduces a loadengine.Result's per-call Outcomes into percentile
// latency, success rate, throughput, and the timeout-layer breakdown
// used by internal/slo and internal/report.
//
// Grounded on the teacher's common/stats.go summary computation
// (Stats.Mean/StdDev via gonum), generalized to also produce the exact,
// non-interpolated percentiles the concurrency-ceiling SLO requires.
package aggregator

import (
	"time"

	"github.com/queueprobe/qprobe/common"
	"github.com/queueprobe/qprobe/internal/loadengine"
	"github.com/queueprobe/qprobe/internal/workitem"
)

// Distribution is a set of percentile summaries derived from a sorted
// sample (spec §3, "Latency Distribution").
type Distribution struct {
	Min, P50, P90, P95, P99, Max float64
	Mean, StdDev                 float64
	Count                        int
}

// Totals carries the per-call outcome tallies plus derived rates (spec
// §4.G).
type Totals struct {
	Requests    int
	Success     int
	Timeout     int
	Error       int
	SuccessRate float64
	Throughput  float64

	Http2LayerTimeouts  int
	ServerLayerTimeouts int
}

// Result is a Concurrency Test Result's aggregate portion (spec §3); the
// caller attaches K, T, the resource snapshot, and the SLO verdict.
type Result struct {
	Totals    Totals
	Latency   Distribution
	QueueWait Distribution
}

// Aggregate reduces a loadengine.Result over duration T into a Result
// (spec §4.G). Pure: the same input always yields an identical output.
func Aggregate(r *loadengine.Result, duration time.Duration) Result {
	t := Totals{
		Requests: r.Total,
		Success:  r.SuccessCount,
		Timeout:  r.TimeoutCount,
		Error:    r.ErrorCount,
	}
	if t.Requests > 0 {
		t.SuccessRate = float64(t.Success) / float64(t.Requests)
	}
	secs := duration.Seconds()
	if secs > 0 {
		t.Throughput = float64(t.Success) / secs
	}
	t.Http2LayerTimeouts = r.TimeoutLayers[workitem.Http2ConnectionLayer]
	t.ServerLayerTimeouts = r.TimeoutLayers[workitem.ServerQueueWait] + r.TimeoutLayers[workitem.ServerProcessing]

	return Result{
		Totals:    t,
		Latency:   distributionOf(r.SuccessLatency),
		QueueWait: distributionOf(r.SuccessQueueWait),
	}
}

func distributionOf(samples []int64) Distribution {
	if len(samples) == 0 {
		return Distribution{}
	}
	floats := make(common.Stats, len(samples))
	for i, v := range samples {
		floats[i] = float64(v)
	}
	sorted := floats.Sorted()
	mean, stddev := sorted.MeanStdDev()

	return Distribution{
		Min:    sorted[0],
		P50:    sorted.Percentile(50),
		P90:    sorted.Percentile(90),
		P95:    sorted.Percentile(95),
		P99:    sorted.Percentile(99),
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		StdDev: stddev,
		Count:  len(sorted),
	}
}
