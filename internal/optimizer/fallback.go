package optimizer

import (
	"fmt"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/command"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// fallbackConfiguration returns the fixed default configuration for a profile.
// It depends only on raw inputs (model name, unit count), never on values from
// the failed computation, so it cannot fail itself.
func (o *Optimizer) fallbackConfiguration(profile Profile, inventory []core.AcceleratorSelection, models []core.ModelSpec) core.Configuration {
	unitCount := core.TotalUnitCount(inventory)
	params := o.buildParameters(profile, models[0], profile.FallbackSeqs, unitCount)

	return core.Configuration{
		Type:        profile.Type,
		Title:       profile.Title,
		Description: profile.Description,
		Parameters:  params,
		Metrics: core.Metrics{
			Throughput:  "unavailable",
			Latency:     "unavailable",
			MemoryUsage: "unavailable",
		},
		Command: command.Render(params),
		Considerations: []string{
			fmt.Sprintf("Optimization for the %s profile failed; these are fixed default values, not a fitted configuration.", profile.Type),
		},
		Fallback: true,
	}
}
