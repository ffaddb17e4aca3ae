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
	"github.com/bitjungle/gensvm/internal/gensvm"
	"github.com/bitjungle/gensvm/internal/utils"
)

var predictOutput string

var predictCmd = &cobra.Command{
	Use:   "predict <model-file> <train-file> <test-file>",
	Short: "Classify a data file with a previously trained model",
	Long: `Predict loads a model file written by "train -o", replays the
kernel preprocessing recorded for the training file it was fit on, and
classifies every row of the test file.`,
	Args: cobra.ExactArgs(3),
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVarP(&predictOutput, "output", "o", "", "Write predictions to this file instead of stdout")
}

func runPredict(c *cobra.Command, args []string) error {
	modelPath, trainPath, testPath := args[0], args[1], args[2]

	mf, err := fileio.ReadModelFile(modelPath)
	if err != nil {
		return err
	}
	model, err := mf.ToModel()
	if err != nil {
		return err
	}
	model.KernelType = kernelFromFlag(mf.KernelType)
	model.Gamma, model.Coef0, model.Degree = mf.Gamma, mf.Coef0, mf.Degree
	model.N, model.M, model.K = mf.N, mf.M, mf.K
	model.V = mf.V
	model.U = gensvm.BuildSimplex(model.K)

	trainFile, err := fileio.ReadDataFile(trainPath)
	if err != nil {
		return err
	}
	if len(mf.ExcludeColumns) > 0 {
		trainFile.Rows, err = utils.FilterMatrix(trainFile.Rows, nil, mf.ExcludeColumns)
		if err != nil {
			return fmt.Errorf("replaying exclude_columns on %s: %w", trainPath, err)
		}
	}
	train, err := gensvm.BuildData(trainFile.Rows, trainFile.Labels, model.K)
	if err != nil {
		return err
	}
	if err := gensvm.Preprocess(model, train); err != nil {
		return err
	}

	testFile, err := fileio.ReadDataFile(testPath)
	if err != nil {
		return err
	}
	if len(mf.ExcludeColumns) > 0 {
		testFile.Rows, err = utils.FilterMatrix(testFile.Rows, nil, mf.ExcludeColumns)
		if err != nil {
			return fmt.Errorf("replaying exclude_columns on %s: %w", testPath, err)
		}
	}
	test, err := gensvm.BuildData(testFile.Rows, testFile.Labels, model.K)
	if err != nil {
		return err
	}
	if err := gensvm.Postprocess(model, train, test); err != nil {
		return err
	}

	predicted, err := gensvm.Predict(model, test)
	if err != nil {
		return err
	}

	if testFile.Labeled {
		fmt.Printf("accuracy: %.2f%%\n", gensvm.Accuracy(predicted, testFile.Labels))
	}

	if predictOutput != "" {
		return fileio.WritePredictionsFile(predictOutput, testFile.Rows, predicted)
	}
	for i, label := range predicted {
		fmt.Printf("%d: %d\n", i, label)
	}
	return nil
}
