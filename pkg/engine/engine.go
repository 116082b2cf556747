/*
Copyright 2025 The vLLM Calculator Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package engine

import (
	"context"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/advisor"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/breakdown"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/cache"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/config"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/logging"
	"github.com/jacoblindev/vllm-calculator-sub002/internal/optimizer"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// Engine derives deployment configurations, memory breakdowns, and
// quantization recommendations from a hardware inventory and model list.
type Engine struct {
	heuristics config.Heuristics
	calc       *breakdown.Calculator
	opt        *optimizer.Optimizer
	adv        *advisor.Advisor
	memo       *cache.PlanCache
}

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	heuristics config.Heuristics
	memoize    bool
}

// WithHeuristics overrides the default heuristic factors.
func WithHeuristics(h config.Heuristics) Option {
	return func(s *settings) {
		s.heuristics = h
	}
}

// WithMemoization enables the plan cache. Cached entries are evicted only by
// an explicit ClearCache call, never on a timer.
func WithMemoization() Option {
	return func(s *settings) {
		s.memoize = true
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	s := settings{heuristics: config.DefaultHeuristics()}
	for _, opt := range opts {
		opt(&s)
	}
	e := &Engine{
		heuristics: s.heuristics,
		calc:       breakdown.NewCalculator(s.heuristics),
		opt:        optimizer.New(s.heuristics),
		adv:        advisor.New(s.heuristics),
	}
	if s.memoize {
		e.memo = cache.NewPlanCache()
	}
	return e
}

// Plan runs one full planning pass. When inventory or models is empty the
// returned plan carries no configurations and a nil breakdown; this is the
// empty-selection sentinel, not an error. Otherwise the plan holds exactly
// three configurations (throughput, latency, balanced), each with a rendered
// launch command.
func (e *Engine) Plan(ctx context.Context, inventory []core.AcceleratorSelection, models []core.ModelSpec) core.Plan {
	if len(inventory) == 0 || len(models) == 0 {
		return core.Plan{}
	}
	if e.memo != nil {
		key := cache.Key(inventory, models)
		return e.memo.GetOrCompute(key, func() core.Plan {
			return e.compute(ctx, inventory, models)
		})
	}
	return e.compute(ctx, inventory, models)
}

func (e *Engine) compute(ctx context.Context, inventory []core.AcceleratorSelection, models []core.ModelSpec) core.Plan {
	logger := logging.FromContext(ctx)
	totalVRAM := core.TotalVRAMGB(inventory)

	plan := core.Plan{
		Configurations:  e.opt.Plan(ctx, inventory, models),
		Recommendations: e.adv.RecommendAll(totalVRAM, models),
	}

	if result, ok := e.calc.Compute(totalVRAM, models, nil); ok {
		b := result.Breakdown
		plan.Breakdown = &b
		plan.BreakdownDegraded = result.Degraded
		if result.Degraded {
			logger.Info("VRAM breakdown degraded to conservative estimate", "reason", result.Reason)
		}
	}

	logger.V(logging.DEBUG).Info("Planning pass complete",
		"totalVRAMGB", totalVRAM,
		"models", len(models),
		"configurations", len(plan.Configurations),
		"recommendations", len(plan.Recommendations))
	return plan
}

// ClearCache evicts all memoized plans. It is a no-op when memoization is
// disabled.
func (e *Engine) ClearCache() {
	if e.memo != nil {
		e.memo.Clear()
	}
}
