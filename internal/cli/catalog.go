package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List built-in GPU and model presets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "gpus",
		Short: "List GPU presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, g := range catalog.GPUs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s VRAM\n", g.Name, humanize.IBytes(uint64(g.VRAMGB*(1<<30))))
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "models",
		Short: "List model presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range catalog.Models() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-36s %6.1f GB  %s\n", m.Name, m.SizeGB, m.Quantization)
			}
			return nil
		},
	})
	return cmd
}
