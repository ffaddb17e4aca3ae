// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package fileio reads and writes the plain-text data, model and
// prediction files GenSVM exchanges with the outside world.
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

// DataFile is the parsed contents of a data file: n rows of m
// whitespace-separated features, each optionally followed by an
// integer class label.
type DataFile struct {
	N       int
	M       int
	Rows    [][]float64
	Labels  []int // nil if the file carried no labels
	Labeled bool
}

// ReadDataFile loads a GenSVM data file: first line "n m", then n lines
// of m feature values optionally followed by a label.
func ReadDataFile(path string) (*DataFile, error) {
	if err := utils.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()
	return ReadData(f)
}

// ReadData parses a data file from an io.Reader.
func ReadData(r io.Reader) (*DataFile, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	n, m, err := readDims(scanner)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, 0, n)
	labels := make([]int, 0, n)
	labeled := false

	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file at row %d: expected %d rows", i, n)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != m && len(fields) != m+1 {
			return nil, fmt.Errorf("row %d: expected %d or %d fields, got %d", i, m, m+1, len(fields))
		}

		row := make([]float64, m)
		for j := 0; j < m; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)

		if len(fields) == m+1 {
			labeled = true
			lbl, err := strconv.Atoi(fields[m])
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid label %q: %w", i, fields[m], err)
			}
			labels = append(labels, lbl)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading data file: %w", err)
	}

	df := &DataFile{N: n, M: m, Rows: rows, Labeled: labeled}
	if labeled {
		df.Labels = labels
	}
	return df, nil
}

func readDims(scanner *bufio.Scanner) (n, m int, err error) {
	if !scanner.Scan() {
		return 0, 0, fmt.Errorf("empty data file: expected a dimension line")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("dimension line must contain exactly two integers, got %q", scanner.Text())
	}
	n, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid instance count: %w", err)
	}
	m, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid feature count: %w", err)
	}
	if n <= 0 || m <= 0 {
		return 0, 0, fmt.Errorf("dimensions must be positive, got n=%d m=%d", n, m)
	}
	return n, m, nil
}

// WriteDataFile writes a DataFile back out in the same format it was
// read in, labels included when present.
func WriteDataFile(path string, df *DataFile) error {
	if err := utils.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create data file: %w", err)
	}
	defer f.Close()
	return WriteData(f, df)
}

// WriteData writes a DataFile to an io.Writer.
func WriteData(w io.Writer, df *DataFile) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if _, err := fmt.Fprintf(bw, "%d %d\n", df.N, df.M); err != nil {
		return err
	}
	for i, row := range df.Rows {
		fields := make([]string, 0, df.M+1)
		for _, v := range row {
			fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if df.Labeled {
			fields = append(fields, strconv.Itoa(df.Labels[i]))
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}
