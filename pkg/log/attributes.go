// Package log defines standard attribute keys for imputation and scoring
// operations.
//
// Using these keys consistently across the pipeline enables structured log
// analysis and filtering. The keys follow a hierarchical naming convention
// (e.g., "data.samples", "strategy.name").

package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model or transformer.
	// Examples: "MeanImputer", "ColumnDropper", "RandomForestRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "predict", "score"
	OperationKey = "ml.operation"

	// StrategyKey identifies the missing-value strategy being evaluated.
	// Examples: "Drop Columns", "Imputation", "Imputation with Tracking"
	StrategyKey = "strategy.name"
)

// Data shape and characteristics.
const (
	// SamplesKey indicates the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of feature columns.
	FeaturesKey = "data.features"

	// MissingColumnsKey indicates how many columns contain missing values.
	MissingColumnsKey = "data.missing_columns"
)

// Evaluation results.
const (
	// MAEKey carries the mean absolute error of a scored strategy.
	MAEKey = "metric.mae"

	// DurationMSKey carries elapsed wall-clock time in milliseconds.
	DurationMSKey = "duration.ms"
)
