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

// Package advisor recommends lower-memory quantization formats for models
// under memory pressure.
package advisor

import (
	"fmt"
	"math"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/config"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/estimator"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/quantization"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// Advisor evaluates models against available VRAM and proposes quantization
// changes when the trade-off is worthwhile.
type Advisor struct {
	heuristics config.Heuristics
}

// New creates an Advisor with the given heuristics.
func New(h config.Heuristics) *Advisor {
	return &Advisor{heuristics: h}
}

// Recommend proposes a lower-memory format for the model when its weight
// memory exceeds the pressure threshold of the total VRAM. The boolean is
// false when no recommendation applies: the model fits comfortably, the
// inputs are unusable, or no format strictly dominates the current one within
// the quality tolerance.
//
// A recommendation never proposes a format with a higher memory factor than
// the current one, and MemorySavingsGB is never negative.
func (a *Advisor) Recommend(totalVRAMGB float64, model core.ModelSpec) (core.QuantizationRecommendation, bool) {
	if totalVRAMGB <= 0 {
		return core.QuantizationRecommendation{}, false
	}

	current := model.Quantization
	if current == "" {
		current = core.QuantFP16
	}
	currentSpec := quantization.Lookup(current)

	params := estimator.DeriveParameters(model)
	currentWeightGB := estimator.WeightMemoryGB(params, current)
	if currentWeightGB <= 0 || math.IsNaN(currentWeightGB) || math.IsInf(currentWeightGB, 0) {
		return core.QuantizationRecommendation{}, false
	}

	pressure := currentWeightGB / totalVRAMGB
	if pressure <= a.heuristics.PressureThreshold {
		return core.QuantizationRecommendation{}, false
	}

	best, ok := a.lowestViableFormat(currentSpec)
	if !ok {
		return core.QuantizationRecommendation{}, false
	}

	savings := currentWeightGB - estimator.WeightMemoryGB(params, best)
	if savings < 0 {
		savings = 0
	}

	bestSpec := quantization.Lookup(best)
	return core.QuantizationRecommendation{
		ModelName:         model.Name,
		CurrentFormat:     current,
		RecommendedFormat: best,
		MemorySavingsGB:   savings,
		QualityImpact:     fmt.Sprintf("~%.0f%% estimated quality loss", bestSpec.QualityLoss*100),
		Reason: fmt.Sprintf("weight memory uses %.0f%% of total VRAM (%s pressure, target <= %.0f%%)",
			pressure*100, core.ClassifyPressure(currentWeightGB, totalVRAMGB), a.heuristics.PressureThreshold*100),
	}, true
}

// RecommendAll runs Recommend over every model and collects the applicable
// recommendations in model order.
func (a *Advisor) RecommendAll(totalVRAMGB float64, models []core.ModelSpec) []core.QuantizationRecommendation {
	var recs []core.QuantizationRecommendation
	for _, m := range models {
		if rec, ok := a.Recommend(totalVRAMGB, m); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// lowestViableFormat returns the format with the lowest memory factor that
// stays within the quality tolerance and strictly beats the current format on
// memory.
func (a *Advisor) lowestViableFormat(current quantization.Spec) (core.QuantFormat, bool) {
	var best core.QuantFormat
	var bestSpec quantization.Spec
	found := false
	for _, f := range quantization.Formats() {
		spec := quantization.Lookup(f)
		if spec.MemoryFactor >= current.MemoryFactor {
			continue
		}
		if spec.QualityLoss > a.heuristics.QualityLossTolerance {
			continue
		}
		if !found || spec.MemoryFactor < bestSpec.MemoryFactor ||
			(spec.MemoryFactor == bestSpec.MemoryFactor && spec.QualityLoss < bestSpec.QualityLoss) {
			best = f
			bestSpec = spec
			found = true
		}
	}
	return best, found
}
