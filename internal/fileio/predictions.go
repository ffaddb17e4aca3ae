// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package fileio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitjungle/gensvm/internal/utils"
)

// WritePredictionsFile writes a predictions file: "n", "m", then one
// line per instance holding its features followed by the predicted
// label.
func WritePredictionsFile(path string, rows [][]float64, predicted []int) error {
	if err := utils.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create predictions file: %w", err)
	}
	defer f.Close()
	return WritePredictions(f, rows, predicted)
}

// WritePredictions writes predictions to an io.Writer.
func WritePredictions(w io.Writer, rows [][]float64, predicted []int) error {
	if len(rows) != len(predicted) {
		return fmt.Errorf("row count %d does not match prediction count %d", len(rows), len(predicted))
	}
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	n := len(rows)
	m := 0
	if n > 0 {
		m = len(rows[0])
	}
	if _, err := fmt.Fprintf(bw, "%d %d\n", n, m); err != nil {
		return err
	}
	for i, row := range rows {
		fields := make([]string, 0, m+1)
		for _, v := range row {
			fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
		}
		fields = append(fields, strconv.Itoa(predicted[i]))
		if _, err := fmt.Fprintln(bw, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}

// ReadPredictionsFile loads a predictions file written by
// WritePredictionsFile.
func ReadPredictionsFile(path string) ([][]float64, []int, error) {
	if err := utils.ValidateFilePath(path); err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open predictions file: %w", err)
	}
	defer f.Close()
	return ReadPredictions(f)
}

// ReadPredictions parses a predictions file from an io.Reader.
func ReadPredictions(r io.Reader) ([][]float64, []int, error) {
	scanner := bufio.NewScanner(r)
	n, m, err := readDims(scanner)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]float64, 0, n)
	labels := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, nil, fmt.Errorf("unexpected end of file at row %d: expected %d rows", i, n)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != m+1 {
			return nil, nil, fmt.Errorf("row %d: expected %d fields, got %d", i, m+1, len(fields))
		}
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			row[j] = v
		}
		lbl, err := strconv.Atoi(fields[m])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid label %q: %w", i, fields[m], err)
		}
		rows = append(rows, row)
		labels = append(labels, lbl)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading predictions file: %w", err)
	}
	return rows, labels, nil
}
