// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/bitjungle/gensvm/internal/config"
	"github.com/bitjungle/gensvm/internal/fileio"
	"github.com/bitjungle/gensvm/internal/gensvm"
	"github.com/bitjungle/gensvm/internal/utils"
)

var (
	flagCoef0     float64
	flagDegree    int
	flagEpsilon   float64
	flagGamma     float64
	flagKappa     float64
	flagLambda    float64
	flagSeedModel string
	flagOutput    string
	flagP         float64
	flagWeighting string
	flagKernel    string
	flagMaxIter   int
	flagExclude   string
)

var trainCmd = &cobra.Command{
	Use:   "train <data-file> [test-file]",
	Short: "Fit a GenSVM model on a data file, optionally scoring a test file",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	def := config.DefaultConfig()
	trainCmd.Flags().Float64VarP(&flagCoef0, "coef0", "c", def.Kernel.Coef0, "Kernel coef0 (poly, sigmoid)")
	trainCmd.Flags().IntVarP(&flagDegree, "degree", "d", def.Kernel.Degree, "Kernel degree (poly)")
	trainCmd.Flags().Float64VarP(&flagEpsilon, "epsilon", "e", def.Model.Epsilon, "Relative convergence tolerance")
	trainCmd.Flags().Float64VarP(&flagGamma, "gamma", "g", def.Kernel.Gamma, "Kernel gamma (rbf, poly, sigmoid); 0 picks a data-scaled default")
	trainCmd.Flags().Float64VarP(&flagKappa, "kappa", "k", def.Model.Kappa, "Huber hinge transition parameter, kappa > -1")
	trainCmd.Flags().Float64VarP(&flagLambda, "lambda", "l", def.Model.Lambda, "Ridge regularization strength, lambda > 0")
	trainCmd.Flags().StringVarP(&flagSeedModel, "seed-model", "m", "", "Seed V from a previously trained model file")
	trainCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the trained model to this file")
	trainCmd.Flags().Float64VarP(&flagP, "p", "p", def.Model.P, "Lp-norm exponent, p in [1, 2]")
	trainCmd.Flags().StringVarP(&flagWeighting, "weighting", "r", def.Model.Weighting, "Instance weighting policy: unit or group")
	trainCmd.Flags().StringVarP(&flagKernel, "kernel", "t", def.Kernel.Type, "Kernel: linear, rbf, poly or sigmoid")
	trainCmd.Flags().IntVar(&flagMaxIter, "max-iter", def.Model.MaxIterations, "Maximum Iterative Majorization iterations")
	trainCmd.Flags().StringVar(&flagExclude, "exclude-columns", "", "1-based feature columns to drop before training, e.g. 2-4,7")
}

func runTrain(c *cobra.Command, args []string) error {
	trainPath := args[0]

	trainFile, err := fileio.ReadDataFile(trainPath)
	if err != nil {
		return err
	}
	if !trainFile.Labeled {
		return fmt.Errorf("training file %s has no labels", trainPath)
	}

	excluded, err := utils.ParseRanges(flagExclude)
	if err != nil {
		return fmt.Errorf("--exclude-columns: %w", err)
	}
	if len(excluded) > 0 {
		trainFile.Rows, err = utils.FilterMatrix(trainFile.Rows, nil, excluded)
		if err != nil {
			return fmt.Errorf("--exclude-columns: %w", err)
		}
	}

	k := maxLabel(trainFile.Labels)
	data, err := gensvm.BuildData(trainFile.Rows, trainFile.Labels, k)
	if err != nil {
		return err
	}

	weighting := gensvm.WeightUnit
	if flagWeighting == "group" {
		weighting = gensvm.WeightGroup
	}
	model, err := gensvm.NewModel(flagP, flagKappa, flagLambda, flagEpsilon, flagMaxIter, weighting)
	if err != nil {
		return err
	}
	model.KernelType = kernelFromFlag(flagKernel)
	model.Gamma = flagGamma
	model.Coef0 = flagCoef0
	model.Degree = flagDegree

	var seedV *mat.Dense
	if flagSeedModel != "" {
		seedModel, err := fileio.ReadModelFile(flagSeedModel)
		if err != nil {
			return err
		}
		seedV = seedModel.V
	}

	logOut := io.Writer(os.Stderr)
	if quiet {
		logOut = io.Discard
	}
	logger := log.New(logOut, "", 0)

	if err := gensvm.Train(model, data, seedV, logger); err != nil {
		return err
	}

	if flagOutput != "" {
		out := &fileio.ModelFile{
			P: model.P, Kappa: model.Kappa, Lambda: model.Lambda, Epsilon: model.Epsilon,
			MaxIter: model.MaxIter, Weighting: string(model.Weighting),
			KernelType: string(model.KernelType), Gamma: model.Gamma, Coef0: model.Coef0, Degree: model.Degree,
			N: model.N, M: model.M, K: model.K, DataFile: trainPath,
			ExcludeColumns: excluded,
			V:              model.V,
		}
		if err := fileio.WriteModelFile(flagOutput, out); err != nil {
			return err
		}
	}

	fmt.Printf("converged=%v iterations=%d loss=%.8f\n", model.Status.Converged, model.Status.Iterations, model.Status.Loss)

	if len(args) == 2 {
		return scoreTestFile(model, data, args[1], excluded)
	}
	return nil
}

func scoreTestFile(model *gensvm.Model, train *gensvm.Dataset, testPath string, excluded []int) error {
	testFile, err := fileio.ReadDataFile(testPath)
	if err != nil {
		return err
	}
	if len(excluded) > 0 {
		testFile.Rows, err = utils.FilterMatrix(testFile.Rows, nil, excluded)
		if err != nil {
			return fmt.Errorf("--exclude-columns: %w", err)
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
		fmt.Printf("test accuracy: %.2f%%\n", gensvm.Accuracy(predicted, testFile.Labels))
	}
	return fileio.WritePredictionsFile(predictionsPathFor(testPath), testFile.Rows, predicted)
}

func predictionsPathFor(testPath string) string {
	return testPath + ".predict"
}

func maxLabel(y []int) int {
	max := 0
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func kernelFromFlag(s string) gensvm.KernelType {
	switch s {
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
