/*
Copyright 2025 The vLLM Calculator Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package breakdown composes weight, KV-cache, activation, and overhead
// estimates into a full accounting of accelerator memory.
package breakdown

import (
	"math"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/config"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/estimator"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// conservativeKVRatio sizes the KV cache as a fraction of total model size on
// the degraded path, where the per-model estimate is unusable.
const conservativeKVRatio = 0.25

// Params are the candidate serving parameters a breakdown is evaluated
// against. Zero fields fall back to the configured defaults.
type Params struct {
	MaxNumSeqs  int
	MaxModelLen int
}

// Result is a tagged breakdown: either a precise estimate or a conservative
// fallback, distinguishable by the Degraded flag so callers and tests are not
// misled into treating a heuristic guess as precise.
type Result struct {
	Breakdown core.VRAMBreakdown

	// Degraded is true when the full estimate failed and the breakdown was
	// recomputed from total model size and fixed ratios.
	Degraded bool

	// Reason describes why the degraded path was taken. Empty when precise.
	Reason string
}

// Calculator computes VRAM breakdowns under a fixed set of heuristics.
type Calculator struct {
	heuristics config.Heuristics
}

// NewCalculator creates a Calculator with the given heuristics.
func NewCalculator(h config.Heuristics) *Calculator {
	return &Calculator{heuristics: h}
}

// Compute returns the memory breakdown for serving the given models on
// totalVRAMGB of accelerator memory. The boolean is false when no breakdown is
// available at all (non-positive VRAM or an empty model list); this is the
// "no selection" sentinel, not an error.
//
// The identity ModelWeightsGB + KVCacheGB + ActivationsGB + SystemOverheadGB +
// AvailableGB == TotalGB holds by construction whenever the workload fits.
// When the hardware is oversubscribed, AvailableGB is clamped at 0 and the
// deficit is observable as RequiredGB(b) > b.TotalGB.
func (c *Calculator) Compute(totalVRAMGB float64, models []core.ModelSpec, chosen *Params) (Result, bool) {
	if totalVRAMGB <= 0 || len(models) == 0 {
		return Result{}, false
	}

	maxNumSeqs := c.heuristics.MaxNumSeqs
	maxModelLen := c.heuristics.MaxModelLen
	if chosen != nil {
		if chosen.MaxNumSeqs > 0 {
			maxNumSeqs = chosen.MaxNumSeqs
		}
		if chosen.MaxModelLen > 0 {
			maxModelLen = chosen.MaxModelLen
		}
	}

	weights := 0.0
	kvCache := 0.0
	for _, m := range models {
		weights += estimator.ModelWeightMemoryGB(m)
		kvCache += estimator.ModelKVCacheMemoryGB(m, maxNumSeqs, maxModelLen)
	}

	if !finite(weights) || !finite(kvCache) {
		return c.conservative(totalVRAMGB, models), true
	}

	return Result{Breakdown: c.assemble(totalVRAMGB, weights, kvCache)}, true
}

// conservative estimates the breakdown from total model size and fixed ratios
// only. Used when the full estimate produced a non-finite value.
func (c *Calculator) conservative(totalVRAMGB float64, models []core.ModelSpec) Result {
	weights := core.TotalModelSizeGB(models)
	if !finite(weights) || weights < 0 {
		weights = 0
	}
	kvCache := weights * conservativeKVRatio
	return Result{
		Breakdown: c.assemble(totalVRAMGB, weights, kvCache),
		Degraded:  true,
		Reason:    "memory estimate produced a non-finite value; using total model size with fixed ratios",
	}
}

// assemble applies the activation and overhead factors and computes the
// available residual. When the hardware fits the workload the component sum
// equals totalVRAMGB exactly; when oversubscribed, AvailableGB is clamped at 0
// and the deficit is observable through RequiredGB exceeding the total.
func (c *Calculator) assemble(totalVRAMGB, weights, kvCache float64) core.VRAMBreakdown {
	activations := weights * c.heuristics.ActivationFactor
	overhead := totalVRAMGB * c.heuristics.OverheadFactor
	available := totalVRAMGB - (weights + kvCache + activations + overhead)
	if available < 0 {
		available = 0
	}
	return core.VRAMBreakdown{
		TotalGB:          totalVRAMGB,
		ModelWeightsGB:   weights,
		KVCacheGB:        kvCache,
		ActivationsGB:    activations,
		SystemOverheadGB: overhead,
		AvailableGB:      available,
	}
}

// RequiredGB returns the memory the breakdown consumes, excluding the
// available residual.
func RequiredGB(b core.VRAMBreakdown) float64 {
	return b.ModelWeightsGB + b.KVCacheGB + b.ActivationsGB + b.SystemOverheadGB
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
