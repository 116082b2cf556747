// Package cli implements the vllm-calculator command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var verbosity int

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vllm-calculator",
		Short: "Size GPU memory and derive vLLM serving configurations",
		Long: `vllm-calculator estimates GPU memory consumption for LLM inference serving
and derives three runtime configurations (throughput, latency, balanced)
from a hardware and model description, each with a ready-to-run launch command.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "log verbosity (0=info, 1=debug, 2=trace)")
	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newCatalogCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
