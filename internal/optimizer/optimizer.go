package optimizer

import (
	"context"
	"fmt"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/breakdown"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/command"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/config"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/logging"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// seqCandidates is the discrete max-num-seqs search space, ascending.
var seqCandidates = []int{1, 2, 4, 8, 16, 32, 64, 128, 256, 512}

// Optimizer derives deployment configurations from a hardware inventory and
// model list. It holds no mutable state; every call is a pure computation over
// its inputs.
type Optimizer struct {
	heuristics config.Heuristics
	calc       *breakdown.Calculator
}

// New creates an Optimizer with the given heuristics.
func New(h config.Heuristics) *Optimizer {
	return &Optimizer{
		heuristics: h,
		calc:       breakdown.NewCalculator(h),
	}
}

// Plan produces exactly one Configuration per profile (throughput, latency,
// balanced) when inventory and models are both non-empty, and nil otherwise.
// A profile whose optimization fails internally degrades to its fixed fallback
// configuration; Plan never returns fewer than three configurations for valid
// inputs.
func (o *Optimizer) Plan(ctx context.Context, inventory []core.AcceleratorSelection, models []core.ModelSpec) []core.Configuration {
	if len(inventory) == 0 || len(models) == 0 {
		return nil
	}
	logger := logging.FromContext(ctx)

	configs := make([]core.Configuration, 0, 3)
	for _, profile := range Profiles() {
		cfg, err := o.optimizeProfile(profile, inventory, models)
		if err != nil {
			logger.Info("Optimization failed for profile, using fixed fallback",
				"profile", string(profile.Type), "error", err.Error())
			cfg = o.fallbackConfiguration(profile, inventory, models)
		}
		configs = append(configs, cfg)
	}
	return configs
}

// optimizeProfile runs the parameterized strategy for one profile. Panics from
// the underlying numeric heuristics are converted to errors so a single
// profile failure cannot abort the whole planning pass.
func (o *Optimizer) optimizeProfile(profile Profile, inventory []core.AcceleratorSelection, models []core.ModelSpec) (cfg core.Configuration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("profile %s: %v", profile.Type, r)
		}
	}()

	totalVRAM := core.TotalVRAMGB(inventory)
	unitCount := core.TotalUnitCount(inventory)

	maxNumSeqs := o.chooseMaxNumSeqs(profile, totalVRAM, models)
	result, ok := o.calc.Compute(totalVRAM, models, &breakdown.Params{
		MaxNumSeqs:  maxNumSeqs,
		MaxModelLen: profile.MaxModelLen,
	})
	if !ok {
		return core.Configuration{}, fmt.Errorf("profile %s: no breakdown available", profile.Type)
	}

	params := o.buildParameters(profile, models[0], maxNumSeqs, unitCount)
	cfg = core.Configuration{
		Type:           profile.Type,
		Title:          profile.Title,
		Description:    profile.Description,
		Parameters:     params,
		Metrics:        o.estimateMetrics(profile, models, maxNumSeqs, unitCount, result.Breakdown),
		Command:        command.Render(params),
		Considerations: o.considerations(profile, models, result),
	}
	return cfg, nil
}

// chooseMaxNumSeqs performs a monotonic search over the discrete candidate
// ladder according to the profile's policy. Memory use only grows with the
// candidate value, so a single pass suffices.
func (o *Optimizer) chooseMaxNumSeqs(profile Profile, totalVRAM float64, models []core.ModelSpec) int {
	largestFitting := func(fits func(core.VRAMBreakdown) bool) int {
		best := seqCandidates[0]
		for _, seqs := range seqCandidates {
			result, ok := o.calc.Compute(totalVRAM, models, &breakdown.Params{
				MaxNumSeqs:  seqs,
				MaxModelLen: profile.MaxModelLen,
			})
			if !ok || !fits(result.Breakdown) {
				break
			}
			best = seqs
		}
		return best
	}

	switch profile.SeqPolicy {
	case SeqMinimize:
		best := largestFitting(func(b core.VRAMBreakdown) bool {
			return breakdown.RequiredGB(b) <= b.TotalGB
		})
		if best > profile.PreferredSeqs {
			return profile.PreferredSeqs
		}
		return best
	case SeqBand:
		return largestFitting(func(b core.VRAMBreakdown) bool {
			return b.AvailableGB/b.TotalGB >= profile.BandLow
		})
	default: // SeqMaximize
		return largestFitting(func(b core.VRAMBreakdown) bool {
			return breakdown.RequiredGB(b) <= b.TotalGB
		})
	}
}

// buildParameters assembles the launch parameters in canonical order. The
// tensor-parallel parameter is present only when the inventory holds more than
// one accelerator unit.
func (o *Optimizer) buildParameters(profile Profile, primary core.ModelSpec, maxNumSeqs, unitCount int) []core.Parameter {
	params := []core.Parameter{
		{
			Name:        command.ParamModel,
			Value:       primary.Name,
			Explanation: "Model to serve",
		},
		{
			Name:        command.ParamGPUMemoryUtilization,
			Value:       command.FormatFloat(profile.TargetUtilization, 2),
			Explanation: "Fraction of GPU memory vLLM is allowed to reserve",
		},
		{
			Name:        command.ParamMaxModelLen,
			Value:       command.FormatInt(profile.MaxModelLen),
			Explanation: "Maximum sequence length in tokens",
		},
		{
			Name:        command.ParamMaxNumSeqs,
			Value:       command.FormatInt(maxNumSeqs),
			Explanation: "Maximum number of concurrent sequences",
		},
	}
	if unitCount > 1 {
		params = append(params, core.Parameter{
			Name:        command.ParamTensorParallelSize,
			Value:       command.FormatInt(unitCount),
			Explanation: "Shards weight matrices across all selected GPUs",
		})
	}
	params = append(params, core.Parameter{
		Name:        command.ParamSwapSpace,
		Value:       command.FormatInt(profile.SwapSpaceGB),
		Explanation: "CPU swap space per GPU in GiB for preempted sequences",
	})
	return params
}

// considerations collects caveat strings for the configuration.
func (o *Optimizer) considerations(profile Profile, models []core.ModelSpec, result breakdown.Result) []string {
	var notes []string

	required := breakdown.RequiredGB(result.Breakdown)
	pressure := core.ClassifyPressure(required, result.Breakdown.TotalGB)
	switch pressure {
	case core.PressureCritical:
		notes = append(notes, "Memory pressure is critical: the workload barely fits or is oversubscribed; consider quantization or more VRAM.")
	case core.PressureHigh:
		notes = append(notes, "Memory pressure is high: little headroom remains for traffic spikes.")
	}

	if result.Degraded {
		notes = append(notes, "Memory figures are a conservative estimate: "+result.Reason)
	}
	if len(models) > 1 {
		notes = append(notes, "Multiple models selected: the command serves the first model; repeat it per model with memory shared accordingly.")
	}
	if profile.Type == core.ConfigLatency {
		notes = append(notes, "Low concurrency limits aggregate throughput; scale out replicas for more traffic.")
	}
	return notes
}
