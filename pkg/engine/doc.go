// Package engine is the public entry point of the vLLM capacity planner.
//
// The engine is a pure, deterministic function of its inputs: a hardware
// inventory and a model list go in, three deployment configurations, a VRAM
// breakdown, and quantization recommendations come out. It performs no I/O,
// holds no mutable state between calls beyond the optional memoization cache,
// and never terminates the surrounding process.
//
// Example usage:
//
//	eng := engine.New(engine.WithMemoization())
//	plan := eng.Plan(ctx, inventory, models)
//	for _, cfg := range plan.Configurations {
//	    fmt.Println(cfg.Title)
//	    fmt.Println(cfg.Command)
//	}
//
// Callers re-invoke Plan whenever their inputs change; the engine performs no
// implicit dependency tracking.
package engine
