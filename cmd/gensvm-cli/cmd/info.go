// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bitjungle/gensvm/internal/fileio"
)

var infoCmd = &cobra.Command{
	Use:   "info <data-file>",
	Short: "Display the dimensions and class distribution of a data file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(c *cobra.Command, args []string) error {
	df, err := fileio.ReadDataFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("instances (n): %d\n", df.N)
	fmt.Printf("features (m):  %d\n", df.M)
	fmt.Printf("labeled:       %v\n", df.Labeled)
	if !df.Labeled {
		return nil
	}

	counts := make(map[int]int)
	for _, y := range df.Labels {
		counts[y]++
	}
	fmt.Println("class distribution:")
	for label := 1; label <= len(counts); label++ {
		fmt.Printf("  class %d: %d instances\n", label, counts[label])
	}
	return nil
}
