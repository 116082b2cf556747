package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jacoblindev/vllm-calculator-sub002/internal/logging"
	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// Scenario is the YAML description of a planning run: the hardware inventory
// and the models to serve.
type Scenario struct {
	GPUs   []ScenarioGPU    `yaml:"gpus" json:"gpus"`
	Models []core.ModelSpec `yaml:"models" json:"models"`
}

// ScenarioGPU is one inventory entry in the scenario file.
type ScenarioGPU struct {
	Name     string  `yaml:"name" json:"name"`
	VRAMGB   float64 `yaml:"vramGB" json:"vramGB"`
	Quantity int     `yaml:"quantity" json:"quantity"`
	Custom   bool    `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// ParseScenario parses scenario YAML. Invalid entries are skipped with a log
// record rather than failing the whole scenario; a duplicate GPU name keeps the
// first entry.
func ParseScenario(data []byte) (Scenario, error) {
	var raw Scenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario: %w", err)
	}

	logger := logging.NewLogger(logging.INFO)
	out := Scenario{}
	seen := make(map[string]bool)

	for _, g := range raw.GPUs {
		if g.Quantity == 0 {
			g.Quantity = 1
		}
		sel := core.AcceleratorSelection{
			Unit:     core.AcceleratorUnit{Name: g.Name, VRAMGB: g.VRAMGB, Custom: g.Custom},
			Quantity: g.Quantity,
		}
		if err := sel.Validate(); err != nil {
			logger.Info("Skipping invalid GPU entry", "gpu", g.Name, "error", err.Error())
			continue
		}
		if seen[g.Name] {
			logger.Info("Duplicate GPU name in scenario - first entry wins", "gpu", g.Name)
			continue
		}
		seen[g.Name] = true
		out.GPUs = append(out.GPUs, g)
	}

	for _, m := range raw.Models {
		if err := m.Validate(); err != nil {
			logger.Info("Skipping invalid model entry", "model", m.Name, "error", err.Error())
			continue
		}
		out.Models = append(out.Models, m)
	}

	return out, nil
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario file %q: %w", path, err)
	}
	return ParseScenario(data)
}

// Inventory converts the scenario's GPU entries to accelerator selections.
func (s Scenario) Inventory() []core.AcceleratorSelection {
	inventory := make([]core.AcceleratorSelection, 0, len(s.GPUs))
	for _, g := range s.GPUs {
		inventory = append(inventory, core.AcceleratorSelection{
			Unit:     core.AcceleratorUnit{Name: g.Name, VRAMGB: g.VRAMGB, Custom: g.Custom},
			Quantity: g.Quantity,
		})
	}
	return inventory
}
