package optimizer

import (
	"context"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/config"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

var _ = Describe("Optimizer", func() {
	var (
		opt    *Optimizer
		ctx    context.Context
		models []core.ModelSpec
	)

	dualA100 := []core.AcceleratorSelection{
		{Unit: core.AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 2},
	}
	singleA100 := []core.AcceleratorSelection{
		{Unit: core.AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 1},
	}

	BeforeEach(func() {
		opt = New(config.DefaultHeuristics())
		ctx = context.Background()
		models = []core.ModelSpec{
			{Name: "meta-llama/Llama-2-7b-hf", SizeGB: 13.5, Quantization: core.QuantFP16},
		}
	})

	Describe("Plan", func() {
		It("returns nil for an empty inventory", func() {
			Expect(opt.Plan(ctx, nil, models)).To(BeNil())
		})

		It("returns nil for an empty model list", func() {
			Expect(opt.Plan(ctx, dualA100, nil)).To(BeNil())
		})

		It("returns exactly three configurations in profile order", func() {
			configs := opt.Plan(ctx, dualA100, models)
			Expect(configs).To(HaveLen(3))
			Expect(configs[0].Type).To(Equal(core.ConfigThroughput))
			Expect(configs[1].Type).To(Equal(core.ConfigLatency))
			Expect(configs[2].Type).To(Equal(core.ConfigBalanced))
		})

		It("emits six parameters per configuration with multiple accelerators", func() {
			configs := opt.Plan(ctx, dualA100, models)
			for _, cfg := range configs {
				Expect(cfg.Parameters).To(HaveLen(6), "profile %s", cfg.Type)
			}
		})

		It("includes tensor-parallel-size equal to the unit count for multi-GPU inventories", func() {
			configs := opt.Plan(ctx, dualA100, models)
			for _, cfg := range configs {
				value, present := cfg.Parameter("tensor-parallel-size")
				Expect(present).To(BeTrue(), "profile %s", cfg.Type)
				Expect(value).To(Equal("2"))
				Expect(cfg.Command).To(ContainSubstring("--tensor-parallel-size 2"))
			}
		})

		It("omits tensor-parallel-size for a single accelerator", func() {
			configs := opt.Plan(ctx, singleA100, models)
			for _, cfg := range configs {
				_, present := cfg.Parameter("tensor-parallel-size")
				Expect(present).To(BeFalse(), "profile %s", cfg.Type)
				Expect(cfg.Command).NotTo(ContainSubstring("--tensor-parallel-size"))
			}
		})

		It("renders commands with the core flags in canonical order", func() {
			configs := opt.Plan(ctx, dualA100, models)
			for _, cfg := range configs {
				command := cfg.Command
				modelIdx := strings.Index(command, "--model")
				utilIdx := strings.Index(command, "--gpu-memory-utilization")
				lenIdx := strings.Index(command, "--max-model-len")
				seqsIdx := strings.Index(command, "--max-num-seqs")
				Expect(modelIdx).To(BeNumerically(">=", 0))
				Expect(utilIdx).To(BeNumerically(">", modelIdx))
				Expect(lenIdx).To(BeNumerically(">", utilIdx))
				Expect(seqsIdx).To(BeNumerically(">", lenIdx))
			}
		})

		It("honors each profile's sequence length", func() {
			configs := opt.Plan(ctx, dualA100, models)
			expected := map[core.ConfigurationType]string{
				core.ConfigThroughput: "2048",
				core.ConfigLatency:    "4096",
				core.ConfigBalanced:   "3072",
			}
			for _, cfg := range configs {
				value, _ := cfg.Parameter("max-model-len")
				Expect(value).To(Equal(expected[cfg.Type]), "profile %s", cfg.Type)
			}
		})

		It("gives the throughput profile at least the concurrency of the latency profile", func() {
			configs := opt.Plan(ctx, dualA100, models)
			seqs := map[core.ConfigurationType]int{}
			for _, cfg := range configs {
				value, _ := cfg.Parameter("max-num-seqs")
				n, err := strconv.Atoi(value)
				Expect(err).NotTo(HaveOccurred())
				Expect(n).To(BeNumerically(">=", 1))
				seqs[cfg.Type] = n
			}
			Expect(seqs[core.ConfigThroughput]).To(BeNumerically(">=", seqs[core.ConfigLatency]))
		})

		It("keeps the latency profile at a small batch size", func() {
			configs := opt.Plan(ctx, dualA100, models)
			for _, cfg := range configs {
				if cfg.Type != core.ConfigLatency {
					continue
				}
				value, _ := cfg.Parameter("max-num-seqs")
				n, _ := strconv.Atoi(value)
				Expect(n).To(BeNumerically("<=", 4))
			}
		})

		It("never emits a fallback configuration for a feasible scenario", func() {
			configs := opt.Plan(ctx, dualA100, models)
			for _, cfg := range configs {
				Expect(cfg.Fallback).To(BeFalse(), "profile %s", cfg.Type)
			}
		})

		It("produces metrics and a title for every configuration", func() {
			configs := opt.Plan(ctx, dualA100, models)
			for _, cfg := range configs {
				Expect(cfg.Title).NotTo(BeEmpty())
				Expect(cfg.Metrics.Throughput).NotTo(BeEmpty())
				Expect(cfg.Metrics.Latency).NotTo(BeEmpty())
				Expect(cfg.Metrics.MemoryUsage).NotTo(BeEmpty())
			}
		})

		It("flags memory pressure for oversubscribed hardware", func() {
			tiny := []core.AcceleratorSelection{
				{Unit: core.AcceleratorUnit{Name: "T4", VRAMGB: 16}, Quantity: 1},
			}
			big := []core.ModelSpec{
				{Name: "meta-llama/Llama-2-70b-hf", SizeGB: 138, Quantization: core.QuantFP16},
			}
			configs := opt.Plan(ctx, tiny, big)
			Expect(configs).To(HaveLen(3))
			for _, cfg := range configs {
				Expect(strings.Join(cfg.Considerations, " ")).To(ContainSubstring("critical"))
			}
		})
	})

	Describe("fallbackConfiguration", func() {
		It("builds a complete fixed configuration per profile", func() {
			for _, profile := range Profiles() {
				cfg := opt.fallbackConfiguration(profile, dualA100, models)
				Expect(cfg.Fallback).To(BeTrue())
				Expect(cfg.Type).To(Equal(profile.Type))
				Expect(cfg.Command).To(ContainSubstring("--model meta-llama/Llama-2-7b-hf"))
				value, _ := cfg.Parameter("max-num-seqs")
				Expect(value).To(Equal(strconv.Itoa(profile.FallbackSeqs)))
				Expect(cfg.Considerations).NotTo(BeEmpty())
			}
		})
	})
})
