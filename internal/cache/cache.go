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

// Package cache provides the caller-owned memoization cache for planning
// results.
package cache

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// PlanCache memoizes planning results keyed by a digest of the full normalized
// input. Entries never expire on their own; the owner evicts them explicitly
// with Clear. Safe for concurrent use.
type PlanCache struct {
	mu    sync.Mutex
	items map[uint64]core.Plan
}

// NewPlanCache creates an empty PlanCache.
func NewPlanCache() *PlanCache {
	return &PlanCache{
		items: make(map[uint64]core.Plan),
	}
}

// Key digests the full normalized input: every unit name, VRAM size and
// quantity, and every model name, size, parameter count and quantization.
// Two inputs share a key only when they are semantically identical, so a
// cached plan is always the plan the engine would recompute.
func Key(inventory []core.AcceleratorSelection, models []core.ModelSpec) uint64 {
	var sb strings.Builder
	for _, s := range inventory {
		fmt.Fprintf(&sb, "g|%s|%g|%d;", s.Unit.Name, s.Unit.VRAMGB, s.Quantity)
	}
	for _, m := range models {
		fmt.Fprintf(&sb, "m|%s|%g|%d|%s;", m.Name, m.SizeGB, m.Parameters, m.Quantization)
	}
	return xxhash.Sum64String(sb.String())
}

// Get returns the cached plan for the key, if present.
func (c *PlanCache) Get(key uint64) (core.Plan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	plan, ok := c.items[key]
	return plan, ok
}

// GetOrCompute returns the cached plan for the key, computing and storing it
// with compute when absent. At most one stored value exists per key; identical
// keys always yield identical plans because compute is a pure function of the
// inputs the key was derived from.
func (c *PlanCache) GetOrCompute(key uint64, compute func() core.Plan) core.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()
	if plan, ok := c.items[key]; ok {
		return plan
	}
	plan := compute()
	c.items[key] = plan
	return plan
}

// Len returns the number of cached plans.
func (c *PlanCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear evicts all cached plans. This is the only eviction path.
func (c *PlanCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[uint64]core.Plan)
}
