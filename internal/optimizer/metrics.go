package optimizer

import (
	"fmt"
	"math"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/breakdown"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/estimator"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/quantization"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// batchingEfficiency discounts aggregate throughput for scheduling and
// KV-cache contention when batching many sequences.
const batchingEfficiency = 0.7

// singleStreamBaseline is the rough single-stream decode rate in tokens/s of a
// 1B-parameter fp16 model on one modern accelerator.
const singleStreamBaseline = 250

// estimateMetrics produces coarse, advisory performance figures for a
// configuration. The numbers are indicative of relative differences between
// profiles, not benchmarks.
func (o *Optimizer) estimateMetrics(profile Profile, models []core.ModelSpec, maxNumSeqs, unitCount int, b core.VRAMBreakdown) core.Metrics {
	paramsB := 0.0
	speed := math.Inf(1)
	for _, m := range models {
		paramsB += estimator.DeriveParameters(m) / 1e9
		// The slowest model's format bounds the shared decode rate.
		speed = math.Min(speed, quantization.Lookup(m.Quantization).SpeedFactor)
	}
	if math.IsInf(speed, 1) {
		speed = 1
	}
	if paramsB <= 0 {
		paramsB = 1
	}

	singleStream := singleStreamBaseline / paramsB * speed * float64(unitCount)
	aggregate := singleStream * float64(maxNumSeqs) * batchingEfficiency
	msPerToken := 1000 / math.Max(singleStream, 1)

	required := breakdown.RequiredGB(b)
	pct := 0.0
	if b.TotalGB > 0 {
		pct = required / b.TotalGB * 100
	}

	return core.Metrics{
		Throughput:  fmt.Sprintf("~%.0f tokens/s aggregate", aggregate),
		Latency:     fmt.Sprintf("~%.0f ms/token per stream", msPerToken),
		MemoryUsage: fmt.Sprintf("%.1f of %.0f GB (%.0f%%)", required, b.TotalGB, pct),
	}
}
