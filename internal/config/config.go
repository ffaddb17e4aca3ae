// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package config

import "github.com/bitjungle/gensvm/internal/gensvm"

// CLIConfig holds configuration for the CLI application.
type CLIConfig struct {
	// Model hyperparameters
	Model ModelConfig `json:"model"`

	// Kernel configuration
	Kernel KernelConfig `json:"kernel"`

	// Output configuration
	Output OutputConfig `json:"output"`
}

// ModelConfig holds the GenSVM optimization hyperparameters.
type ModelConfig struct {
	// P is the Lp-norm exponent, in [1, 2].
	P float64 `json:"p"`

	// Kappa controls the Huber hinge transition, kappa > -1.
	Kappa float64 `json:"kappa"`

	// Lambda is the ridge regularization strength, lambda > 0.
	Lambda float64 `json:"lambda"`

	// Epsilon is the relative convergence tolerance.
	Epsilon float64 `json:"epsilon"`

	// MaxIterations bounds the Iterative Majorization loop.
	MaxIterations int `json:"max_iterations"`

	// Weighting selects the instance weighting policy ("unit" or "group").
	Weighting string `json:"weighting"`
}

// KernelConfig holds kernel preprocessing configuration.
type KernelConfig struct {
	// Type names the kernel: "linear", "rbf", "poly" or "sigmoid".
	Type string `json:"type"`

	Gamma float64 `json:"gamma"`
	Coef0 float64 `json:"coef0"`
	Degree int    `json:"degree"`
}

// OutputConfig holds output file configuration.
type OutputConfig struct {
	// Suffix for output files.
	FileSuffix string `json:"file_suffix"`

	// Whether to create the output directory if it doesn't exist.
	CreateOutputDir bool `json:"create_output_dir"`
}

// DefaultConfig returns the default configuration, matching the original
// GenSVM command-line defaults.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Model: ModelConfig{
			P:             1.0,
			Kappa:         0.0,
			Lambda:        1e-8,
			Epsilon:       1e-6,
			MaxIterations: 1000,
			Weighting:     "unit",
		},
		Kernel: KernelConfig{
			Type:   "linear",
			Gamma:  1.0,
			Coef0:  1.0,
			Degree: 2,
		},
		Output: OutputConfig{
			FileSuffix:      ".model",
			CreateOutputDir: true,
		},
	}
}

// WeightPolicy maps the configured weighting string to a gensvm.WeightPolicy.
func (c *CLIConfig) WeightPolicy() gensvm.WeightPolicy {
	if c.Model.Weighting == "group" {
		return gensvm.WeightGroup
	}
	return gensvm.WeightUnit
}

// KernelKind maps the configured kernel string to a gensvm.KernelType.
func (c *CLIConfig) KernelKind() gensvm.KernelType {
	switch c.Kernel.Type {
	case "rbf":
		return gensvm.KernelRBF
	case "poly":
		return gensvm.KernelPoly
	case "sigmoid":
		return gensvm.KernelSigmoid
	default:
		return gensvm.KernelLinear
	}
}
