package command

import (
	"strings"
	"testing"

	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

func baseParams() []core.Parameter {
	return []core.Parameter{
		{Name: ParamModel, Value: "meta-llama/Llama-2-7b-hf"},
		{Name: ParamGPUMemoryUtilization, Value: "0.90"},
		{Name: ParamMaxModelLen, Value: "2048"},
		{Name: ParamMaxNumSeqs, Value: "64"},
	}
}

func TestRenderCoreParameterOrder(t *testing.T) {
	got := Render(baseParams())
	want := DefaultEntrypoint +
		" --model meta-llama/Llama-2-7b-hf" +
		" --gpu-memory-utilization 0.90" +
		" --max-model-len 2048" +
		" --max-num-seqs 64"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderCanonicalOrderIndependentOfInsertion(t *testing.T) {
	shuffled := []core.Parameter{
		{Name: ParamMaxNumSeqs, Value: "64"},
		{Name: ParamSwapSpace, Value: "4"},
		{Name: ParamModel, Value: "m"},
		{Name: ParamTensorParallelSize, Value: "2"},
		{Name: ParamMaxModelLen, Value: "2048"},
		{Name: ParamGPUMemoryUtilization, Value: "0.90"},
	}
	got := Render(shuffled)

	order := []string{"--model", "--gpu-memory-utilization", "--max-model-len", "--max-num-seqs", "--tensor-parallel-size", "--swap-space"}
	last := -1
	for _, flag := range order {
		idx := strings.Index(got, flag)
		if idx < 0 {
			t.Fatalf("Render() missing %s: %q", flag, got)
		}
		if idx < last {
			t.Errorf("Render() flag %s out of canonical order: %q", flag, got)
		}
		last = idx
	}
}

func TestRenderUnknownParametersKeepInsertionOrder(t *testing.T) {
	params := append(baseParams(),
		core.Parameter{Name: "enable-prefix-caching", Value: ""},
		core.Parameter{Name: "dtype", Value: "float16"},
	)
	got := Render(params)

	prefixIdx := strings.Index(got, "--enable-prefix-caching")
	dtypeIdx := strings.Index(got, "--dtype float16")
	seqsIdx := strings.Index(got, "--max-num-seqs")
	if prefixIdx < 0 || dtypeIdx < 0 {
		t.Fatalf("Render() missing trailing parameters: %q", got)
	}
	if prefixIdx < seqsIdx || dtypeIdx < prefixIdx {
		t.Errorf("Render() trailing parameters out of insertion order: %q", got)
	}
}

func TestRenderIdempotent(t *testing.T) {
	params := append(baseParams(), core.Parameter{Name: ParamTensorParallelSize, Value: "2"})
	first := Render(params)
	second := Render(params)
	if first != second {
		t.Errorf("Render() not idempotent:\n%q\n%q", first, second)
	}
}

func TestRenderWithCustomEntrypoint(t *testing.T) {
	got := RenderWith("vllm serve", baseParams())
	if !strings.HasPrefix(got, "vllm serve --model ") {
		t.Errorf("RenderWith() = %q, want vllm serve prefix", got)
	}
}

func TestFormatFloatFixedDecimals(t *testing.T) {
	if got := FormatFloat(0.9, 2); got != "0.90" {
		t.Errorf("FormatFloat(0.9, 2) = %q, want \"0.90\"", got)
	}
	if got := FormatFloat(0.85, 2); got != "0.85" {
		t.Errorf("FormatFloat(0.85, 2) = %q, want \"0.85\"", got)
	}
}
