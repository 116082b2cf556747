// Package optimizer derives the three deployment configurations from a
// hardware inventory and model list.
//
// The optimizer implements one parameterized strategy driven by per-profile
// policy records instead of three independent code paths:
//
//   - throughput: maximizes concurrency at a 2048-token context and high
//     memory utilization; never shortens the context to gain headroom
//   - latency: favors small batches at a 4096-token context and moderate
//     utilization
//   - balanced: a midpoint policy at 3072 tokens that keeps 10-20% of VRAM
//     free
//
// Each profile runs independently over a discrete max-num-seqs ladder, using
// the breakdown calculator as its constraint check. Memory use is monotone in
// the candidate value, so a single ascending pass finds the best choice.
//
// A profile whose computation fails internally degrades to a fixed fallback
// configuration for its type; a planning pass over non-empty inputs always
// yields exactly three configurations.
package optimizer
