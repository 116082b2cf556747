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

package core

// MemoryPressure classifies the ratio of required memory to available capacity.
type MemoryPressure string

// Memory pressure classes, from comfortable to oversubscribed.
const (
	PressureLow      MemoryPressure = "low"
	PressureModerate MemoryPressure = "moderate"
	PressureHigh     MemoryPressure = "high"
	PressureCritical MemoryPressure = "critical"
)

// ClassifyPressure maps a required/capacity ratio onto a MemoryPressure class.
// A non-positive capacity is always critical.
func ClassifyPressure(requiredGB, capacityGB float64) MemoryPressure {
	if capacityGB <= 0 {
		return PressureCritical
	}
	ratio := requiredGB / capacityGB
	switch {
	case ratio < 0.5:
		return PressureLow
	case ratio < 0.75:
		return PressureModerate
	case ratio < 0.95:
		return PressureHigh
	default:
		return PressureCritical
	}
}
