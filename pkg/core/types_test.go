package core

import (
	"testing"
)

func TestTotalVRAMGB(t *testing.T) {
	tests := []struct {
		name      string
		inventory []AcceleratorSelection
		want      float64
	}{
		{
			name:      "empty inventory",
			inventory: nil,
			want:      0,
		},
		{
			name: "single unit",
			inventory: []AcceleratorSelection{
				{Unit: AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 1},
			},
			want: 80,
		},
		{
			name: "two units of 80GB plus one of 24GB",
			inventory: []AcceleratorSelection{
				{Unit: AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 2},
				{Unit: AcceleratorUnit{Name: "L4", VRAMGB: 24}, Quantity: 1},
			},
			want: 184,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalVRAMGB(tt.inventory); got != tt.want {
				t.Errorf("TotalVRAMGB() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestTotalUnitCount(t *testing.T) {
	inventory := []AcceleratorSelection{
		{Unit: AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 2},
		{Unit: AcceleratorUnit{Name: "L4", VRAMGB: 24}, Quantity: 3},
	}
	if got := TotalUnitCount(inventory); got != 5 {
		t.Errorf("TotalUnitCount() = %d, want 5", got)
	}
}

func TestAcceleratorSelectionValidate(t *testing.T) {
	tests := []struct {
		name      string
		selection AcceleratorSelection
		wantErr   bool
	}{
		{
			name:      "valid",
			selection: AcceleratorSelection{Unit: AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 2},
		},
		{
			name:      "zero quantity",
			selection: AcceleratorSelection{Unit: AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 0},
			wantErr:   true,
		},
		{
			name:      "quantity above bound",
			selection: AcceleratorSelection{Unit: AcceleratorUnit{Name: "A100-80GB", VRAMGB: 80}, Quantity: 9},
			wantErr:   true,
		},
		{
			name:      "negative VRAM",
			selection: AcceleratorSelection{Unit: AcceleratorUnit{Name: "bad", VRAMGB: -1}, Quantity: 1},
			wantErr:   true,
		},
		{
			name:      "empty name",
			selection: AcceleratorSelection{Unit: AcceleratorUnit{VRAMGB: 80}, Quantity: 1},
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.selection.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelSpecValidate(t *testing.T) {
	valid := ModelSpec{Name: "meta-llama/Llama-2-7b-hf", SizeGB: 13.5}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	noSize := ModelSpec{Name: "m"}
	if err := noSize.Validate(); err == nil {
		t.Error("Validate() expected error for model without size or parameters")
	}
	paramsOnly := ModelSpec{Name: "m", Parameters: 7_000_000_000}
	if err := paramsOnly.Validate(); err != nil {
		t.Errorf("Validate() unexpected error for parameters-only model: %v", err)
	}
}

func TestClassifyPressure(t *testing.T) {
	tests := []struct {
		name     string
		required float64
		capacity float64
		want     MemoryPressure
	}{
		{"low", 40, 160, PressureLow},
		{"moderate", 100, 160, PressureModerate},
		{"high", 140, 160, PressureHigh},
		{"critical", 155, 160, PressureCritical},
		{"oversubscribed", 200, 160, PressureCritical},
		{"zero capacity", 1, 0, PressureCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPressure(tt.required, tt.capacity); got != tt.want {
				t.Errorf("ClassifyPressure(%g, %g) = %s, want %s", tt.required, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestConfigurationParameter(t *testing.T) {
	cfg := Configuration{
		Parameters: []Parameter{
			{Name: "model", Value: "m"},
			{Name: "max-num-seqs", Value: "64"},
		},
	}
	if v, ok := cfg.Parameter("max-num-seqs"); !ok || v != "64" {
		t.Errorf("Parameter(max-num-seqs) = %q, %v; want \"64\", true", v, ok)
	}
	if _, ok := cfg.Parameter("tensor-parallel-size"); ok {
		t.Error("Parameter(tensor-parallel-size) expected absent")
	}
}
