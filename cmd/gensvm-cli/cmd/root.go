// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var quiet bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gensvm-cli",
	Short: "GenSVM - the Generalized Multiclass Support Vector Machine",
	Long: `GenSVM fits a single multiclass support vector machine by Iterative
Majorization, encoding the K classes as vertices of a (K-1)-simplex and
minimizing a Huberized hinge loss directly over all classes at once.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
}
