package optimizer

import (
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// SeqPolicy is an enumeration of the batch-size selection policies used by the
// profiles.
type SeqPolicy int

// enumeration of SeqPolicy
const (
	// SeqMaximize picks the largest concurrency that still fits in memory.
	SeqMaximize SeqPolicy = iota
	// SeqMinimize favors single or small batches, shrinking only when the
	// preferred batch does not fit.
	SeqMinimize
	// SeqBand picks the largest concurrency that keeps the available
	// residual within a target fraction of total VRAM.
	SeqBand
)

// Profile is the per-strategy policy record: one parameterized strategy
// consults these fields instead of maintaining three separate code paths.
type Profile struct {
	Type        core.ConfigurationType
	Title       string
	Description string

	// TargetUtilization is the gpu-memory-utilization value emitted for this
	// profile.
	TargetUtilization float64

	// MaxModelLen is the sequence length the profile serves at. Profiles
	// never shorten it to gain headroom.
	MaxModelLen int

	// SeqPolicy selects how max-num-seqs is chosen.
	SeqPolicy SeqPolicy

	// PreferredSeqs caps the concurrency under SeqMinimize.
	PreferredSeqs int

	// BandLow and BandHigh bound available/totalVRAM under SeqBand.
	BandLow  float64
	BandHigh float64

	// SwapSpaceGB is the CPU swap space emitted for this profile.
	SwapSpaceGB int

	// FallbackSeqs is the fixed max-num-seqs used by the profile's fallback
	// configuration.
	FallbackSeqs int
}

// Profiles returns the three planning profiles in output order.
func Profiles() []Profile {
	return []Profile{
		{
			Type:              core.ConfigThroughput,
			Title:             "Throughput-Optimized",
			Description:       "Maximizes concurrent request capacity for batch serving workloads.",
			TargetUtilization: 0.90,
			MaxModelLen:       2048,
			SeqPolicy:         SeqMaximize,
			SwapSpaceGB:       4,
			FallbackSeqs:      256,
		},
		{
			Type:              core.ConfigLatency,
			Title:             "Latency-Optimized",
			Description:       "Favors small batches and long contexts for interactive workloads.",
			TargetUtilization: 0.75,
			MaxModelLen:       4096,
			SeqPolicy:         SeqMinimize,
			PreferredSeqs:     4,
			SwapSpaceGB:       2,
			FallbackSeqs:      4,
		},
		{
			Type:              core.ConfigBalanced,
			Title:             "Balanced",
			Description:       "Trades throughput for headroom, keeping 10-20% of VRAM free.",
			TargetUtilization: 0.85,
			MaxModelLen:       3072,
			SeqPolicy:         SeqBand,
			BandLow:           0.10,
			BandHigh:          0.20,
			SwapSpaceGB:       4,
			FallbackSeqs:      32,
		},
	}
}
