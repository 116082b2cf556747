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

// Package estimator computes weight and KV-cache memory requirements for LLM
// inference serving.
package estimator

import (
	"math"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/quantization"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

const (
	// gib is the number of bytes in one GiB.
	gib = 1 << 30

	// fp16BytesPerParam is the storage assumption used when estimating a
	// parameter count from a model's size on disk.
	fp16BytesPerParam = 2
)

// DeriveParameters returns the model's parameter count, estimating it from
// SizeGB when the model does not declare one.
//
// The size heuristic assumes fp16 storage regardless of the model's declared
// quantization. This matches the convention of published model sizes but
// under-estimates the parameter count for pre-quantized checkpoints.
func DeriveParameters(m core.ModelSpec) float64 {
	if m.Parameters > 0 {
		return float64(m.Parameters)
	}
	if m.SizeGB <= 0 {
		return 0
	}
	return m.SizeGB * gib / fp16BytesPerParam
}

// WeightMemoryGB returns the memory needed to hold the weights of a model with
// the given parameter count under the given quantization format, in GB.
// The result scales linearly in both the parameter count and the format's
// bytes per parameter.
func WeightMemoryGB(parameters float64, format core.QuantFormat) float64 {
	if parameters <= 0 {
		return 0
	}
	return parameters * quantization.Lookup(format).BytesPerParam / gib
}

// EstimateLayers infers a transformer layer count from the parameter count:
// layers ~ floor(sqrt(parameters / 1e6)), with a floor of 1.
func EstimateLayers(parameters float64) int {
	if parameters <= 0 {
		return 1
	}
	layers := int(math.Floor(math.Sqrt(parameters / 1e6)))
	if layers < 1 {
		return 1
	}
	return layers
}

// EstimateHiddenDim infers a hidden dimension from the parameter count and
// layer count using the standard transformer sizing relation
// parameters ~ 12 x layers x hidden^2.
func EstimateHiddenDim(parameters float64, layers int) float64 {
	if parameters <= 0 || layers < 1 {
		return 0
	}
	return math.Sqrt(parameters / (12 * float64(layers)))
}

// KVCacheMemoryGB estimates the key/value cache footprint in GB for the given
// concurrency and sequence-length choices.
//
// Per token, each layer retains one key and one value vector of the hidden
// dimension, stored at the KV precision. The estimate grows monotonically with
// both maxNumSeqs and maxModelLen and is never negative.
func KVCacheMemoryGB(parameters float64, maxNumSeqs, maxModelLen int, kvFormat core.QuantFormat) float64 {
	if parameters <= 0 || maxNumSeqs <= 0 || maxModelLen <= 0 {
		return 0
	}
	layers := EstimateLayers(parameters)
	hidden := EstimateHiddenDim(parameters, layers)
	bytesPerElem := quantization.Lookup(kvFormat).BytesPerParam

	// 2x for the separate key and value tensors.
	perTokenBytes := 2 * float64(layers) * hidden * bytesPerElem
	totalBytes := perTokenBytes * float64(maxNumSeqs) * float64(maxModelLen)
	return totalBytes / gib
}

// ModelWeightMemoryGB returns the weight memory for a model spec, deriving the
// parameter count when absent and applying the model's own quantization.
func ModelWeightMemoryGB(m core.ModelSpec) float64 {
	format := m.Quantization
	if format == "" {
		format = core.QuantFP16
	}
	return WeightMemoryGB(DeriveParameters(m), format)
}

// ModelKVCacheMemoryGB returns the KV-cache memory for a model spec at the
// given serving parameters. The KV cache is held at fp16 regardless of the
// weight quantization.
func ModelKVCacheMemoryGB(m core.ModelSpec, maxNumSeqs, maxModelLen int) float64 {
	return KVCacheMemoryGB(DeriveParameters(m), maxNumSeqs, maxModelLen, core.QuantFP16)
}
