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
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/bitjungle/gensvm/internal/gensvm"
	"github.com/bitjungle/gensvm/internal/utils"
	"github.com/bitjungle/gensvm/internal/version"
)

// ModelFile is the parsed contents of a trained model file: a Model:
// section of hyperparameters, a Data: section naming the training file
// and its dimensions, and an Output: section holding V row by row.
type ModelFile struct {
	P, Kappa, Lambda, Epsilon float64
	MaxIter                   int
	Weighting                 string
	KernelType                string
	Gamma, Coef0              float64
	Degree                    int
	N, M, K                   int
	DataFile                  string
	ExcludeColumns            []int
	V                         *mat.Dense
}

// WriteModelFile writes a trained model out in GenSVM's line-oriented
// text format.
func WriteModelFile(path string, mf *ModelFile) error {
	if err := utils.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer f.Close()
	return WriteModel(f, mf)
}

// WriteModel writes a ModelFile to an io.Writer.
func WriteModel(w io.Writer, mf *ModelFile) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprintf(bw, "# GenSVM model file\n")
	fmt.Fprintf(bw, "# generated %s by %s\n", time.Now().UTC().Format(time.RFC3339), version.String())

	fmt.Fprintf(bw, "Model:\n")
	fmt.Fprintf(bw, "\tp = %s\n", strconv.FormatFloat(mf.P, 'g', -1, 64))
	fmt.Fprintf(bw, "\tkappa = %s\n", strconv.FormatFloat(mf.Kappa, 'g', -1, 64))
	fmt.Fprintf(bw, "\tlambda = %s\n", strconv.FormatFloat(mf.Lambda, 'g', -1, 64))
	fmt.Fprintf(bw, "\tepsilon = %s\n", strconv.FormatFloat(mf.Epsilon, 'g', -1, 64))
	fmt.Fprintf(bw, "\tmax_iter = %d\n", mf.MaxIter)
	fmt.Fprintf(bw, "\tweighting = %s\n", mf.Weighting)
	fmt.Fprintf(bw, "\tkernel = %s\n", mf.KernelType)
	fmt.Fprintf(bw, "\tgamma = %s\n", strconv.FormatFloat(mf.Gamma, 'g', -1, 64))
	fmt.Fprintf(bw, "\tcoef0 = %s\n", strconv.FormatFloat(mf.Coef0, 'g', -1, 64))
	fmt.Fprintf(bw, "\tdegree = %d\n", mf.Degree)

	fmt.Fprintf(bw, "Data:\n")
	fmt.Fprintf(bw, "\tfilename = %s\n", mf.DataFile)
	fmt.Fprintf(bw, "\tn = %d\n", mf.N)
	fmt.Fprintf(bw, "\tm = %d\n", mf.M)
	fmt.Fprintf(bw, "\tK = %d\n", mf.K)
	if len(mf.ExcludeColumns) > 0 {
		cols := make([]string, len(mf.ExcludeColumns))
		for i, c := range mf.ExcludeColumns {
			cols[i] = strconv.Itoa(c)
		}
		fmt.Fprintf(bw, "\texclude_columns = %s\n", strings.Join(cols, ","))
	}

	fmt.Fprintf(bw, "Output:\n")
	r, c := mf.V.Dims()
	for i := 0; i < r; i++ {
		fields := make([]string, c)
		for j := 0; j < c; j++ {
			fields[j] = strconv.FormatFloat(mf.V.At(i, j), 'g', -1, 64)
		}
		fmt.Fprintf(bw, "\t%s\n", strings.Join(fields, " "))
	}
	return nil
}

// ReadModelFile loads a model file written by WriteModelFile.
func ReadModelFile(path string) (*ModelFile, error) {
	if err := utils.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()
	return ReadModel(f)
}

// ReadModel parses a ModelFile from an io.Reader.
func ReadModel(r io.Reader) (*ModelFile, error) {
	mf := &ModelFile{}
	var vRows [][]float64

	section := ""
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, " ") {
			section = strings.TrimSuffix(trimmed, ":")
			continue
		}

		switch section {
		case "Model":
			if err := setModelField(mf, trimmed); err != nil {
				return nil, err
			}
		case "Data":
			if err := setDataField(mf, trimmed); err != nil {
				return nil, err
			}
		case "Output":
			fields := strings.Fields(trimmed)
			row := make([]float64, len(fields))
			for j, tok := range fields {
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return nil, fmt.Errorf("output row: %w", err)
				}
				row[j] = v
			}
			vRows = append(vRows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading model file: %w", err)
	}

	if len(vRows) > 0 {
		mf.V = utils.MatrixToDense(vRows)
	}
	return mf, nil
}

func keyValue(line string) (string, string, error) {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed key = value line: %q", line)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func setModelField(mf *ModelFile, line string) error {
	key, val, err := keyValue(line)
	if err != nil {
		return err
	}
	switch key {
	case "p":
		mf.P, err = strconv.ParseFloat(val, 64)
	case "kappa":
		mf.Kappa, err = strconv.ParseFloat(val, 64)
	case "lambda":
		mf.Lambda, err = strconv.ParseFloat(val, 64)
	case "epsilon":
		mf.Epsilon, err = strconv.ParseFloat(val, 64)
	case "max_iter":
		mf.MaxIter, err = strconv.Atoi(val)
	case "weighting":
		mf.Weighting = val
	case "kernel":
		mf.KernelType = val
	case "gamma":
		mf.Gamma, err = strconv.ParseFloat(val, 64)
	case "coef0":
		mf.Coef0, err = strconv.ParseFloat(val, 64)
	case "degree":
		mf.Degree, err = strconv.Atoi(val)
	}
	return err
}

func setDataField(mf *ModelFile, line string) error {
	key, val, err := keyValue(line)
	if err != nil {
		return err
	}
	switch key {
	case "filename":
		mf.DataFile = val
	case "n":
		mf.N, err = strconv.Atoi(val)
	case "m":
		mf.M, err = strconv.Atoi(val)
	case "K":
		mf.K, err = strconv.Atoi(val)
	case "exclude_columns":
		if val == "" {
			return nil
		}
		for _, tok := range strings.Split(val, ",") {
			n, convErr := strconv.Atoi(strings.TrimSpace(tok))
			if convErr != nil {
				return fmt.Errorf("exclude_columns: %w", convErr)
			}
			mf.ExcludeColumns = append(mf.ExcludeColumns, n)
		}
	}
	return err
}

// ToModel constructs a gensvm.Model from a parsed ModelFile's p, kappa,
// lambda, epsilon, max_iter and weighting. The kernel settings, the
// dimensions and the fitted V are not copied; the caller assigns them.
func (mf *ModelFile) ToModel() (*gensvm.Model, error) {
	weighting := gensvm.WeightUnit
	if mf.Weighting == "group" {
		weighting = gensvm.WeightGroup
	}
	return gensvm.NewModel(mf.P, mf.Kappa, mf.Lambda, mf.Epsilon, mf.MaxIter, weighting)
}
