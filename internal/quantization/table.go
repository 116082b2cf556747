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

// Package quantization maps quantization formats to their memory and quality
// characteristics.
package quantization

import (
	"sort"

	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// Spec describes the memory and quality characteristics of a quantization
// format.
type Spec struct {
	// BitsPerParam is the average number of bits used per parameter.
	BitsPerParam float64

	// BytesPerParam is BitsPerParam expressed in bytes.
	BytesPerParam float64

	// MemoryFactor is the weight memory footprint relative to fp32 (1.0).
	// fp16 is 0.5. Non-increasing as precision decreases.
	MemoryFactor float64

	// QualityLoss is the estimated relative quality degradation versus
	// unquantized weights, in [0, 1].
	QualityLoss float64

	// SpeedFactor is the relative decode speed versus fp16 (1.0), used for
	// coarse throughput estimates only.
	SpeedFactor float64
}

// table is the static, read-only format table. Values follow the commonly
// published averages for each scheme; GGUF/GGML entries assume a mid-range
// K-quant mix.
var table = map[core.QuantFormat]Spec{
	core.QuantFP32:       {BitsPerParam: 32, BytesPerParam: 4, MemoryFactor: 1.0, QualityLoss: 0, SpeedFactor: 0.6},
	core.QuantFP16:       {BitsPerParam: 16, BytesPerParam: 2, MemoryFactor: 0.5, QualityLoss: 0, SpeedFactor: 1.0},
	core.QuantBF16:       {BitsPerParam: 16, BytesPerParam: 2, MemoryFactor: 0.5, QualityLoss: 0, SpeedFactor: 1.0},
	core.QuantFP8:        {BitsPerParam: 8, BytesPerParam: 1, MemoryFactor: 0.25, QualityLoss: 0.02, SpeedFactor: 1.2},
	core.QuantINT8:       {BitsPerParam: 8, BytesPerParam: 1, MemoryFactor: 0.25, QualityLoss: 0.03, SpeedFactor: 1.15},
	core.QuantGGUF:       {BitsPerParam: 4.85, BytesPerParam: 0.60625, MemoryFactor: 0.1515625, QualityLoss: 0.05, SpeedFactor: 1.1},
	core.QuantGGML:       {BitsPerParam: 4.85, BytesPerParam: 0.60625, MemoryFactor: 0.1515625, QualityLoss: 0.06, SpeedFactor: 1.05},
	core.QuantAWQ:        {BitsPerParam: 4, BytesPerParam: 0.5, MemoryFactor: 0.125, QualityLoss: 0.05, SpeedFactor: 1.25},
	core.QuantSqueezeLLM: {BitsPerParam: 4, BytesPerParam: 0.5, MemoryFactor: 0.125, QualityLoss: 0.06, SpeedFactor: 1.1},
	core.QuantGPTQ:       {BitsPerParam: 4, BytesPerParam: 0.5, MemoryFactor: 0.125, QualityLoss: 0.07, SpeedFactor: 1.2},
	core.QuantINT4:       {BitsPerParam: 4, BytesPerParam: 0.5, MemoryFactor: 0.125, QualityLoss: 0.1, SpeedFactor: 1.3},
}

// Lookup returns the Spec for the given format. Unknown or empty formats fall
// back to the fp16 entry; Lookup never fails.
func Lookup(format core.QuantFormat) Spec {
	if spec, ok := table[format]; ok {
		return spec
	}
	return table[core.QuantFP16]
}

// Known reports whether the format has a table entry of its own.
func Known(format core.QuantFormat) bool {
	_, ok := table[format]
	return ok
}

// Formats returns all known formats ordered by descending MemoryFactor,
// ties broken by ascending QualityLoss then by name for determinism.
func Formats() []core.QuantFormat {
	formats := make([]core.QuantFormat, 0, len(table))
	for f := range table {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool {
		a, b := table[formats[i]], table[formats[j]]
		if a.MemoryFactor != b.MemoryFactor {
			return a.MemoryFactor > b.MemoryFactor
		}
		if a.QualityLoss != b.QualityLoss {
			return a.QualityLoss < b.QualityLoss
		}
		return formats[i] < formats[j]
	})
	return formats
}
