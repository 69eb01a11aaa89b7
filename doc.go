// Package imputego provides missing-value handling for tabular data in Go,
// together with the evaluation pipeline to compare handling strategies by
// model error.
//
// Three strategies are implemented, each with a scikit-learn-like
// Fit/Transform API where statistics are learned from the training table
// only and applied unchanged to the test table:
//
//   - ColumnDropper: remove every column that contains a missing value
//   - MeanImputer: fill missing cells with the per-column training mean
//   - TrackedMeanImputer: mean imputation plus boolean indicator columns
//     recording which cells were originally missing
//
// # Quick Start
//
//	table, y, err := dataset.ReadCSV("melb_data.csv", "Price")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	train, test, yTrain, yTest, err := dataset.TrainTestSplit(table, y, 0.2, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cmp := evaluation.NewComparison(func() model.Regressor {
//	    return ensemble.NewRandomForestRegressor(
//	        ensemble.WithNEstimators(10),
//	        ensemble.WithRandomState(0),
//	    )
//	})
//	cmp.Add("Dropping Columns with Missing Values", preprocessing.NewColumnDropper())
//	cmp.Add("Imputation", preprocessing.NewMeanImputer())
//	cmp.Add("Imputation with Tracking", preprocessing.NewTrackedMeanImputer())
//
//	results, err := cmp.Run(train, test, yTrain, yTest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    fmt.Println(r) // Mean Absolute Error from Imputation: 183811.66
//	}
//
// # Packages
//
//   - dataset: the Table abstraction (named numeric columns, NaN as the
//     missing sentinel), CSV loading and seeded train/test splitting
//   - preprocessing: the missing-value detector and the three strategies
//   - ensemble: RandomForestRegressor and the underlying CART regression tree
//   - metrics: regression metrics (MAE, MSE, RMSE, R²)
//   - evaluation: strategy scoring, comparison and plotting
//   - pkg/errors: structured errors with stack traces and warnings
//   - pkg/log: structured logging setup
package imputego
