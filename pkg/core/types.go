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

package core

import (
	"fmt"
)

// MaxQuantityPerUnit is the upper bound on the number of accelerators of a
// single type in one selection.
const MaxQuantityPerUnit = 8

// QuantFormat identifies a quantization format (numeric encoding of weights).
type QuantFormat string

// Known quantization formats. Unknown formats are treated as fp16 by the
// quantization table.
const (
	QuantFP32       QuantFormat = "fp32"
	QuantFP16       QuantFormat = "fp16"
	QuantBF16       QuantFormat = "bf16"
	QuantFP8        QuantFormat = "fp8"
	QuantINT8       QuantFormat = "int8"
	QuantINT4       QuantFormat = "int4"
	QuantAWQ        QuantFormat = "awq"
	QuantGPTQ       QuantFormat = "gptq"
	QuantGGUF       QuantFormat = "gguf"
	QuantGGML       QuantFormat = "ggml"
	QuantSqueezeLLM QuantFormat = "squeezellm"
)

// AcceleratorUnit describes a single accelerator (GPU) type.
// Identity is by Name, case-sensitive.
type AcceleratorUnit struct {
	// Name is the accelerator model name, e.g. "A100-80GB".
	Name string `yaml:"name" json:"name"`

	// VRAMGB is the memory capacity of one unit in GB. Must be positive.
	VRAMGB float64 `yaml:"vramGB" json:"vramGB"`

	// Custom marks units entered by the user rather than taken from a catalog.
	Custom bool `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// Validate checks for invalid accelerator values.
func (u AcceleratorUnit) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("accelerator name must not be empty")
	}
	if u.VRAMGB <= 0 {
		return fmt.Errorf("accelerator %q: vramGB must be positive, got %g", u.Name, u.VRAMGB)
	}
	return nil
}

// AcceleratorSelection is one entry of the hardware inventory: an accelerator
// type and how many of it are selected.
type AcceleratorSelection struct {
	Unit     AcceleratorUnit `yaml:"unit" json:"unit"`
	Quantity int             `yaml:"quantity" json:"quantity"`
}

// Validate checks for invalid selection values.
func (s AcceleratorSelection) Validate() error {
	if err := s.Unit.Validate(); err != nil {
		return err
	}
	if s.Quantity < 1 {
		return fmt.Errorf("accelerator %q: quantity must be >= 1, got %d", s.Unit.Name, s.Quantity)
	}
	if s.Quantity > MaxQuantityPerUnit {
		return fmt.Errorf("accelerator %q: quantity must be <= %d, got %d", s.Unit.Name, MaxQuantityPerUnit, s.Quantity)
	}
	return nil
}

// TotalVRAMGB returns the total memory of the inventory in GB:
// the sum of unit.VRAMGB x quantity over all selections.
func TotalVRAMGB(inventory []AcceleratorSelection) float64 {
	total := 0.0
	for _, s := range inventory {
		total += s.Unit.VRAMGB * float64(s.Quantity)
	}
	return total
}

// TotalUnitCount returns the total number of accelerator units in the
// inventory, across all types.
func TotalUnitCount(inventory []AcceleratorSelection) int {
	count := 0
	for _, s := range inventory {
		count += s.Quantity
	}
	return count
}

// ModelSpec describes an LLM to be served.
type ModelSpec struct {
	// Name is the model identifier, e.g. "meta-llama/Llama-2-7b-hf".
	Name string `yaml:"name" json:"name"`

	// SizeGB is the size of the model weights at native precision, in GB.
	SizeGB float64 `yaml:"sizeGB" json:"sizeGB"`

	// Parameters is the parameter count. When zero it is estimated from
	// SizeGB assuming fp16 storage.
	Parameters int64 `yaml:"parameters,omitempty" json:"parameters,omitempty"`

	// Quantization is the weight quantization format. Empty defaults to fp16.
	Quantization QuantFormat `yaml:"quantization,omitempty" json:"quantization,omitempty"`

	// Architecture is an optional architecture tag, e.g. "llama".
	Architecture string `yaml:"architecture,omitempty" json:"architecture,omitempty"`
}

// Validate checks for invalid model values.
func (m ModelSpec) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("model name must not be empty")
	}
	if m.SizeGB <= 0 && m.Parameters <= 0 {
		return fmt.Errorf("model %q: one of sizeGB or parameters must be positive", m.Name)
	}
	return nil
}

// TotalModelSizeGB returns the summed native-precision weight size of all
// models, in GB.
func TotalModelSizeGB(models []ModelSpec) float64 {
	total := 0.0
	for _, m := range models {
		total += m.SizeGB
	}
	return total
}

// VRAMBreakdown decomposes total accelerator memory into named components.
// All fields are in GB and non-negative. By construction:
//
//	ModelWeightsGB + KVCacheGB + ActivationsGB + SystemOverheadGB + AvailableGB == TotalGB
//
// AvailableGB is the residual, clamped at 0 when the hardware is oversubscribed.
type VRAMBreakdown struct {
	TotalGB          float64 `yaml:"totalGB" json:"totalGB"`
	ModelWeightsGB   float64 `yaml:"modelWeightsGB" json:"modelWeightsGB"`
	KVCacheGB        float64 `yaml:"kvCacheGB" json:"kvCacheGB"`
	ActivationsGB    float64 `yaml:"activationsGB" json:"activationsGB"`
	SystemOverheadGB float64 `yaml:"systemOverheadGB" json:"systemOverheadGB"`
	AvailableGB      float64 `yaml:"availableGB" json:"availableGB"`
}

// ConfigurationType identifies the optimization objective of a configuration.
type ConfigurationType string

// The three configuration types produced by every planning pass.
const (
	ConfigThroughput ConfigurationType = "throughput"
	ConfigLatency    ConfigurationType = "latency"
	ConfigBalanced   ConfigurationType = "balanced"
)

// Parameter is a single launch parameter with a human-readable explanation.
// Values are always strings; numeric parameters are rendered with a fixed
// decimal format at construction time.
type Parameter struct {
	Name        string `yaml:"name" json:"name"`
	Value       string `yaml:"value" json:"value"`
	Explanation string `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// Metrics carries coarse, advisory performance estimates for a configuration.
// Values are indicative only and not guaranteed precise.
type Metrics struct {
	Throughput  string `yaml:"throughput" json:"throughput"`
	Latency     string `yaml:"latency" json:"latency"`
	MemoryUsage string `yaml:"memoryUsage" json:"memoryUsage"`
}

// Configuration is one complete deployment configuration.
type Configuration struct {
	Type           ConfigurationType `yaml:"type" json:"type"`
	Title          string            `yaml:"title" json:"title"`
	Description    string            `yaml:"description" json:"description"`
	Parameters     []Parameter       `yaml:"parameters" json:"parameters"`
	Metrics        Metrics           `yaml:"metrics" json:"metrics"`
	Command        string            `yaml:"command" json:"command"`
	Considerations []string          `yaml:"considerations,omitempty" json:"considerations,omitempty"`

	// Fallback is true when the configuration is a fixed default emitted
	// after an internal computation failure rather than an optimized result.
	Fallback bool `yaml:"fallback,omitempty" json:"fallback,omitempty"`
}

// Parameter returns the value of the named parameter and whether it is present.
func (c Configuration) Parameter(name string) (string, bool) {
	for _, p := range c.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// QuantizationRecommendation suggests a lower-memory quantization format for a
// model under memory pressure.
type QuantizationRecommendation struct {
	ModelName         string      `yaml:"modelName" json:"modelName"`
	CurrentFormat     QuantFormat `yaml:"currentFormat" json:"currentFormat"`
	RecommendedFormat QuantFormat `yaml:"recommendedFormat" json:"recommendedFormat"`
	MemorySavingsGB   float64     `yaml:"memorySavingsGB" json:"memorySavingsGB"`
	QualityImpact     string      `yaml:"qualityImpact" json:"qualityImpact"`
	Reason            string      `yaml:"reason" json:"reason"`
}

// Plan is the full result of one planning pass over an inventory and model list.
type Plan struct {
	// Configurations holds exactly three entries (throughput, latency,
	// balanced) when inventory and models are both non-empty, and is empty
	// otherwise.
	Configurations []Configuration `yaml:"configurations" json:"configurations"`

	// Breakdown is the memory accounting for the selected hardware and
	// models. It is nil when no breakdown is available (empty inputs).
	Breakdown *VRAMBreakdown `yaml:"breakdown,omitempty" json:"breakdown,omitempty"`

	// BreakdownDegraded is true when the breakdown was produced by the
	// conservative fallback path rather than the full estimator.
	BreakdownDegraded bool `yaml:"breakdownDegraded,omitempty" json:"breakdownDegraded,omitempty"`

	// Recommendations lists quantization changes worth considering.
	Recommendations []QuantizationRecommendation `yaml:"recommendations,omitempty" json:"recommendations,omitempty"`
}

// HasValidConfiguration reports whether the plan produced any configuration.
func (p Plan) HasValidConfiguration() bool {
	return len(p.Configurations) > 0
}
