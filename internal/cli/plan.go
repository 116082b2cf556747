package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/config"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/logging"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/engine"
)

func newPlanCmd() *cobra.Command {
	var (
		scenarioPath   string
		heuristicsPath string
		outputFormat   string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Derive serving configurations from a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.LoadScenario(scenarioPath)
			if err != nil {
				return err
			}
			heuristics, err := config.LoadHeuristics(heuristicsPath)
			if err != nil {
				return err
			}

			ctx := logging.IntoContext(cmd.Context(), logging.NewLogger(verbosity))
			eng := engine.New(engine.WithHeuristics(heuristics))
			plan := eng.Plan(ctx, scenario.Inventory(), scenario.Models)

			switch outputFormat {
			case "yaml":
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(plan)
			case "text":
				printPlan(cmd.OutOrStdout(), scenario, plan)
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text or yaml)", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to the scenario YAML file (required)")
	cmd.Flags().StringVar(&heuristicsPath, "heuristics", "", "path to a heuristics override file")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text or yaml")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}

func printPlan(w io.Writer, scenario config.Scenario, plan core.Plan) {
	inventory := scenario.Inventory()
	if !plan.HasValidConfiguration() {
		fmt.Fprintln(w, "No configurations: select at least one GPU and one model.")
		return
	}

	fmt.Fprintf(w, "Hardware: %d GPU(s), %s total VRAM\n",
		core.TotalUnitCount(inventory), gb(core.TotalVRAMGB(inventory)))
	for _, m := range scenario.Models {
		fmt.Fprintf(w, "Model: %s (%s, %s)\n", m.Name, gb(m.SizeGB), m.Quantization)
	}

	if plan.Breakdown != nil {
		b := plan.Breakdown
		fmt.Fprintf(w, "\nVRAM breakdown (total %s):\n", gb(b.TotalGB))
		fmt.Fprintf(w, "  weights:     %s\n", gb(b.ModelWeightsGB))
		fmt.Fprintf(w, "  kv cache:    %s\n", gb(b.KVCacheGB))
		fmt.Fprintf(w, "  activations: %s\n", gb(b.ActivationsGB))
		fmt.Fprintf(w, "  overhead:    %s\n", gb(b.SystemOverheadGB))
		fmt.Fprintf(w, "  available:   %s\n", gb(b.AvailableGB))
		if plan.BreakdownDegraded {
			fmt.Fprintln(w, "  (conservative estimate)")
		}
	}

	for _, cfg := range plan.Configurations {
		fmt.Fprintf(w, "\n=== %s ===\n%s\n", cfg.Title, cfg.Description)
		for _, p := range cfg.Parameters {
			fmt.Fprintf(w, "  --%-24s %s\n", p.Name, p.Value)
		}
		fmt.Fprintf(w, "  throughput: %s | latency: %s | memory: %s\n",
			cfg.Metrics.Throughput, cfg.Metrics.Latency, cfg.Metrics.MemoryUsage)
		fmt.Fprintf(w, "  command: %s\n", cfg.Command)
		for _, note := range cfg.Considerations {
			fmt.Fprintf(w, "  note: %s\n", note)
		}
	}

	for _, rec := range plan.Recommendations {
		fmt.Fprintf(w, "\nQuantization suggestion for %s: %s -> %s (saves %s, %s)\n  %s\n",
			rec.ModelName, rec.CurrentFormat, rec.RecommendedFormat,
			gb(rec.MemorySavingsGB), rec.QualityImpact, rec.Reason)
	}
}

// gb renders a GB figure as a human-readable byte size.
func gb(v float64) string {
	if v < 0 {
		v = 0
	}
	return humanize.IBytes(uint64(v * (1 << 30)))
}
