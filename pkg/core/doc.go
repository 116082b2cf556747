// Package core provides the fundamental data structures for the vLLM capacity
// planning engine.
//
// This package contains the domain value objects that represent the entities
// exchanged between the engine and its callers:
//
//   - AcceleratorUnit / AcceleratorSelection: GPU types and the hardware inventory
//   - ModelSpec: LLM model definitions (size, parameter count, quantization)
//   - VRAMBreakdown: per-component accounting of accelerator memory
//   - Configuration: a deployment configuration with parameters and launch command
//   - QuantizationRecommendation: a suggested lower-memory quantization format
//   - Plan: the full result of one planning pass
//
// All types are plain value objects constructed fresh from caller-supplied
// inventory and model lists on each invocation. The package has no dependencies
// beyond the standard library and holds no mutable state.
//
// Example usage:
//
//	inventory := []core.AcceleratorSelection{
//	    {Unit: core.AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 2},
//	}
//	models := []core.ModelSpec{
//	    {Name: "meta-llama/Llama-2-7b-hf", SizeGB: 13.5, Quantization: core.QuantFP16},
//	}
//	total := core.TotalVRAMGB(inventory) // 160
//
// The core package is designed to be:
//   - Immutable where possible (value types)
//   - Type-safe with strong domain boundaries
//   - Independent of any transport or UI concerns (pure domain data)
package core
