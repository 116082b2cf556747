// Package command renders chosen parameter sets into canonical vLLM launch
// command strings.
package command

import (
	"strconv"
	"strings"

	"github.com/jacoblindev/vllm-calculator-sub002/pkg/core"
)

// DefaultEntrypoint is the vLLM OpenAI-compatible server entrypoint.
const DefaultEntrypoint = "python -m vllm.entrypoints.openai.api_server"

// Canonical parameter names. Parameters are stored without the "--" prefix;
// Render adds it.
const (
	ParamModel                = "model"
	ParamGPUMemoryUtilization = "gpu-memory-utilization"
	ParamMaxModelLen          = "max-model-len"
	ParamMaxNumSeqs           = "max-num-seqs"
	ParamTensorParallelSize   = "tensor-parallel-size"
	ParamSwapSpace            = "swap-space"
)

// canonicalOrder fixes the relative ordering of the known parameters. Any
// parameter not listed here is rendered after these, in insertion order.
var canonicalOrder = []string{
	ParamModel,
	ParamGPUMemoryUtilization,
	ParamMaxModelLen,
	ParamMaxNumSeqs,
	ParamTensorParallelSize,
	ParamSwapSpace,
}

// Render produces the launch command for the given parameters using the
// default entrypoint.
func Render(params []core.Parameter) string {
	return RenderWith(DefaultEntrypoint, params)
}

// RenderWith produces a launch command of the form
//
//	<entrypoint> --model <id> --gpu-memory-utilization <v> --max-model-len <v> --max-num-seqs <v> [...]
//
// Known parameters appear in canonical order; remaining parameters follow in
// insertion order. Rendering is deterministic: the same parameter set always
// yields a byte-identical string.
func RenderWith(entrypoint string, params []core.Parameter) string {
	var sb strings.Builder
	sb.WriteString(entrypoint)

	emitted := make(map[string]bool, len(params))
	byName := make(map[string]core.Parameter, len(params))
	for _, p := range params {
		// First occurrence wins for duplicate names.
		if _, ok := byName[p.Name]; !ok {
			byName[p.Name] = p
		}
	}

	for _, name := range canonicalOrder {
		if p, ok := byName[name]; ok && !emitted[name] {
			writeFlag(&sb, p)
			emitted[name] = true
		}
	}
	for _, p := range params {
		if emitted[p.Name] {
			continue
		}
		writeFlag(&sb, p)
		emitted[p.Name] = true
	}

	return sb.String()
}

func writeFlag(sb *strings.Builder, p core.Parameter) {
	sb.WriteString(" --")
	sb.WriteString(p.Name)
	if p.Value != "" {
		sb.WriteString(" ")
		sb.WriteString(p.Value)
	}
}

// FormatFloat renders a float parameter value with a fixed number of decimal
// places, independent of locale.
func FormatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatInt renders an integer parameter value.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}
