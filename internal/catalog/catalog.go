// Package catalog ships small built-in GPU and model presets for CLI
// convenience. The data is static; the engine itself never fetches catalogs.
package catalog

import (
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// GPUs lists common accelerator presets.
func GPUs() []core.AcceleratorUnit {
	return []core.AcceleratorUnit{
		{Name: "H100-80GB", VRAMGB: 80},
		{Name: "A100-80GB", VRAMGB: 80},
		{Name: "A100-40GB", VRAMGB: 40},
		{Name: "L40S", VRAMGB: 48},
		{Name: "L4", VRAMGB: 24},
		{Name: "A10G", VRAMGB: 24},
		{Name: "RTX-4090", VRAMGB: 24},
		{Name: "RTX-3090", VRAMGB: 24},
		{Name: "T4", VRAMGB: 16},
	}
}

// Models lists common model presets with fp16 weight sizes.
func Models() []core.ModelSpec {
	return []core.ModelSpec{
		{Name: "meta-llama/Llama-2-7b-hf", SizeGB: 13.5, Quantization: core.QuantFP16, Architecture: "llama"},
		{Name: "meta-llama/Llama-2-13b-hf", SizeGB: 26, Quantization: core.QuantFP16, Architecture: "llama"},
		{Name: "meta-llama/Llama-2-70b-hf", SizeGB: 138, Quantization: core.QuantFP16, Architecture: "llama"},
		{Name: "meta-llama/Meta-Llama-3-8B", SizeGB: 16, Quantization: core.QuantFP16, Architecture: "llama"},
		{Name: "meta-llama/Meta-Llama-3-70B", SizeGB: 140, Quantization: core.QuantFP16, Architecture: "llama"},
		{Name: "mistralai/Mistral-7B-v0.1", SizeGB: 14.5, Quantization: core.QuantFP16, Architecture: "mistral"},
		{Name: "mistralai/Mixtral-8x7B-v0.1", SizeGB: 93, Quantization: core.QuantFP16, Architecture: "mixtral"},
		{Name: "Qwen/Qwen2-7B", SizeGB: 15.2, Quantization: core.QuantFP16, Architecture: "qwen2"},
		{Name: "microsoft/phi-2", SizeGB: 5.6, Quantization: core.QuantFP16, Architecture: "phi"},
	}
}

// FindGPU returns the preset with the given name.
func FindGPU(name string) (core.AcceleratorUnit, bool) {
	for _, g := range GPUs() {
		if g.Name == name {
			return g, true
		}
	}
	return core.AcceleratorUnit{}, false
}

// FindModel returns the preset with the given name.
func FindModel(name string) (core.ModelSpec, bool) {
	for _, m := range Models() {
		if m.Name == name {
			return m, true
		}
	}
	return core.ModelSpec{}, false
}
