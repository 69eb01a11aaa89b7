// Command imputego compares missing-value handling strategies on a CSV
// dataset by training a random forest regressor and reporting the Mean
// Absolute Error of each strategy.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/imputego/core/model"
	"github.com/YuminosukeSato/imputego/dataset"
	"github.com/YuminosukeSato/imputego/ensemble"
	"github.com/YuminosukeSato/imputego/evaluation"
	"github.com/YuminosukeSato/imputego/pkg/log"
	"github.com/YuminosukeSato/imputego/preprocessing"
)

var rootCmd = &cobra.Command{
	Use:   "imputego",
	Short: "Missing-value preprocessing strategy comparison",
	Long: `imputego compares three strategies for handling missing values in
tabular data (dropping columns, mean imputation, and mean imputation with
indicator columns) by training a regression model on each cleaned dataset
and reporting the out-of-sample Mean Absolute Error.`,
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the strategy comparison on a CSV dataset",
	RunE:  runCompare,
}

var (
	dataPath string
	target   string
	testSize float64
	seed     int64
	trees    int
	maxDepth int
	fallback bool
	plotPath string
	logLevel string
)

func init() {
	compareCmd.Flags().StringVar(&dataPath, "data", "", "path to the CSV dataset (required)")
	compareCmd.Flags().StringVar(&target, "target", "", "name of the target column (required)")
	compareCmd.Flags().Float64Var(&testSize, "test-size", 0.2, "fraction of rows held out for testing")
	compareCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for the split and the model")
	compareCmd.Flags().IntVar(&trees, "trees", 10, "number of trees in the random forest")
	compareCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum tree depth (0 = unlimited)")
	compareCmd.Flags().BoolVar(&fallback, "fallback", false, "substitute 0 for columns whose training mean is undefined instead of failing")
	compareCmd.Flags().StringVar(&plotPath, "plot", "", "optional path for a MAE bar chart image")
	compareCmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	_ = compareCmd.MarkFlagRequired("data")
	_ = compareCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	log.SetupLogger(logLevel)

	start := time.Now()
	table, y, err := dataset.ReadCSV(dataPath, target)
	if err != nil {
		return err
	}
	slog.Info("Loaded dataset",
		log.SamplesKey, table.Rows(),
		log.FeaturesKey, table.Cols(),
		log.MissingColumnsKey, len(preprocessing.MissingColumns(table)),
	)

	train, test, yTrain, yTest, err := dataset.TrainTestSplit(table, y, testSize, seed)
	if err != nil {
		return err
	}

	cmp := evaluation.NewComparison(func() model.Regressor {
		return ensemble.NewRandomForestRegressor(
			ensemble.WithNEstimators(trees),
			ensemble.WithMaxDepth(maxDepth),
			ensemble.WithRandomState(seed),
		)
	})
	cmp.Add("Dropping Columns with Missing Values", preprocessing.NewColumnDropper())
	if fallback {
		cmp.Add("Imputation", preprocessing.NewMeanImputerWithFallback(0))
		cmp.Add("Imputation with Tracking", preprocessing.NewTrackedMeanImputerWithFallback(0))
	} else {
		cmp.Add("Imputation", preprocessing.NewMeanImputer())
		cmp.Add("Imputation with Tracking", preprocessing.NewTrackedMeanImputer())
	}

	results, err := cmp.Run(train, test, yTrain, yTest)
	if err != nil {
		slog.Error("Comparison failed", log.ErrAttr(err))
		return err
	}

	for _, r := range results {
		fmt.Println(r)
		slog.Info("Strategy scored",
			log.StrategyKey, r.Name,
			log.MAEKey, r.MAE,
			log.FeaturesKey, r.Columns,
		)
	}
	slog.Info("Comparison finished", log.DurationMSKey, time.Since(start).Milliseconds())

	if plotPath != "" {
		if err := evaluation.SavePlot(results, plotPath); err != nil {
			return err
		}
		fmt.Printf("Saved MAE chart to %s\n", plotPath)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
