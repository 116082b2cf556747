package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHeuristics(t *testing.T) {
	h := DefaultHeuristics()
	require.NoError(t, h.Validate())
	assert.Equal(t, 0.15, h.ActivationFactor)
	assert.Equal(t, 0.08, h.OverheadFactor)
	assert.Equal(t, 16, h.MaxNumSeqs)
	assert.Equal(t, 2048, h.MaxModelLen)
	assert.Equal(t, 0.85, h.PressureThreshold)
}

func TestHeuristicsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Heuristics)
		wantErr bool
	}{
		{"defaults valid", func(h *Heuristics) {}, false},
		{"negative activation factor", func(h *Heuristics) { h.ActivationFactor = -0.1 }, true},
		{"overhead factor above one", func(h *Heuristics) { h.OverheadFactor = 1.5 }, true},
		{"zero maxNumSeqs", func(h *Heuristics) { h.MaxNumSeqs = 0 }, true},
		{"zero maxModelLen", func(h *Heuristics) { h.MaxModelLen = 0 }, true},
		{"zero pressure threshold", func(h *Heuristics) { h.PressureThreshold = 0 }, true},
		{"tolerance above one", func(h *Heuristics) { h.QualityLossTolerance = 2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := DefaultHeuristics()
			tt.mutate(&h)
			err := h.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadHeuristicsEmptyPathReturnsDefaults(t *testing.T) {
	h, err := LoadHeuristics("")
	require.NoError(t, err)
	assert.Equal(t, DefaultHeuristics(), h)
}

func TestParseScenario(t *testing.T) {
	data := []byte(`
gpus:
  - name: A100-80GB
    vramGB: 80
    quantity: 2
  - name: L4
    vramGB: 24
models:
  - name: meta-llama/Llama-2-7b-hf
    sizeGB: 13.5
    quantization: fp16
`)
	scenario, err := ParseScenario(data)
	require.NoError(t, err)
	require.Len(t, scenario.GPUs, 2)
	require.Len(t, scenario.Models, 1)

	// Quantity defaults to 1 when omitted.
	assert.Equal(t, 1, scenario.GPUs[1].Quantity)

	inventory := scenario.Inventory()
	assert.Equal(t, "A100-80GB", inventory[0].Unit.Name)
	assert.Equal(t, 2, inventory[0].Quantity)
}

func TestParseScenarioSkipsInvalidEntries(t *testing.T) {
	data := []byte(`
gpus:
  - name: A100-80GB
    vramGB: 80
  - name: broken
    vramGB: -1
  - name: A100-80GB
    vramGB: 80
models:
  - name: ok
    sizeGB: 13.5
  - name: ""
    sizeGB: 10
`)
	scenario, err := ParseScenario(data)
	require.NoError(t, err)

	// The invalid GPU is dropped and the duplicate keeps the first entry.
	require.Len(t, scenario.GPUs, 1)
	assert.Equal(t, "A100-80GB", scenario.GPUs[0].Name)

	require.Len(t, scenario.Models, 1)
	assert.Equal(t, "ok", scenario.Models[0].Name)
}

func TestParseScenarioRejectsMalformedYAML(t *testing.T) {
	_, err := ParseScenario([]byte("gpus: [whoops"))
	assert.Error(t, err)
}
