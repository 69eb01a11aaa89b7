package evaluation

import (
	"math/rand"
	"testing"

	"github.com/YuminosukeSato/imputego/core/model"
	"github.com/YuminosukeSato/imputego/dataset"
	"github.com/YuminosukeSato/imputego/ensemble"
	"github.com/YuminosukeSato/imputego/preprocessing"
)

// evalFixture builds train/test tables with missing values in two columns
// and a target that depends on all features.
func evalFixture(t *testing.T, n int, seed int64) (*dataset.Table, []float64) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = rng.Float64() * 10
		b[i] = rng.Float64() * 5
		c[i] = rng.Float64() * 2
		y[i] = 2*a[i] + 3*b[i] + c[i] + rng.NormFloat64()*0.1
		if rng.Float64() < 0.2 {
			b[i] = dataset.Missing
		}
		if rng.Float64() < 0.1 {
			c[i] = dataset.Missing
		}
	}

	table, err := dataset.NewTable([]string{"A", "B", "C"}, [][]float64{a, b, c})
	if err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}
	return table, y
}

func newTestRegressor() model.Regressor {
	return ensemble.NewRandomForestRegressor(
		ensemble.WithNEstimators(5),
		ensemble.WithMaxDepth(4),
		ensemble.WithRandomState(0),
	)
}

func TestComparisonRun(t *testing.T) {
	train, yTrain := evalFixture(t, 120, 1)
	test, yTest := evalFixture(t, 40, 2)

	cmp := NewComparison(newTestRegressor)
	cmp.Add("Dropping Columns with Missing Values", preprocessing.NewColumnDropper())
	cmp.Add("Imputation", preprocessing.NewMeanImputer())
	cmp.Add("Imputation with Tracking", preprocessing.NewTrackedMeanImputer())

	results, err := cmp.Run(train, test, yTrain, yTest)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// 結果は追加順
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	wantNames := []string{
		"Dropping Columns with Missing Values",
		"Imputation",
		"Imputation with Tracking",
	}
	for i, r := range results {
		if r.Name != wantNames[i] {
			t.Errorf("results[%d].Name = %q, want %q", i, r.Name, wantNames[i])
		}
		if r.MAE < 0 {
			t.Errorf("results[%d].MAE = %v, must be non-negative", i, r.MAE)
		}
	}

	// 列数: 削除(1) < 元(3) < 追跡付き(5)
	if results[0].Columns != 1 {
		t.Errorf("drop strategy columns = %d, want 1", results[0].Columns)
	}
	if results[1].Columns != 3 {
		t.Errorf("impute strategy columns = %d, want 3", results[1].Columns)
	}
	if results[2].Columns != 5 {
		t.Errorf("tracking strategy columns = %d, want 5", results[2].Columns)
	}
}

func TestComparisonRunDeterministic(t *testing.T) {
	train, yTrain := evalFixture(t, 80, 3)
	test, yTest := evalFixture(t, 20, 4)

	run := func() []StrategyResult {
		cmp := NewComparison(newTestRegressor)
		cmp.Add("Imputation", preprocessing.NewMeanImputer())
		results, err := cmp.Run(train, test, yTrain, yTest)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return results
	}

	r1 := run()
	r2 := run()
	if r1[0].MAE != r2[0].MAE {
		t.Errorf("same seed produced different MAE: %v vs %v", r1[0].MAE, r2[0].MAE)
	}
}

func TestComparisonRunValidation(t *testing.T) {
	train, yTrain := evalFixture(t, 40, 5)
	test, yTest := evalFixture(t, 10, 6)

	// スキーマ不一致
	other, _ := dataset.NewTable([]string{"X"}, [][]float64{make([]float64, 10)})
	cmp := NewComparison(newTestRegressor)
	cmp.Add("Imputation", preprocessing.NewMeanImputer())
	if _, err := cmp.Run(train, other, yTrain, make([]float64, 10)); err == nil {
		t.Error("Run() with mismatched schemas should fail")
	}

	// 目的変数の長さ不一致
	if _, err := cmp.Run(train, test, yTrain[:5], yTest); err == nil {
		t.Error("Run() with short yTrain should fail")
	}

	// 戦略が無い
	empty := NewComparison(newTestRegressor)
	if _, err := empty.Run(train, test, yTrain, yTest); err == nil {
		t.Error("Run() with no strategies should fail")
	}
}

func TestComparisonRunAllColumnsDropped(t *testing.T) {
	// 全列に欠損があると削除戦略は特徴量を全て失い、評価は失敗する
	train, err := dataset.NewTable(
		[]string{"A"},
		[][]float64{{1, dataset.Missing, 3, 4}},
	)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	test, err := dataset.NewTable([]string{"A"}, [][]float64{{5, 6}})
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}

	cmp := NewComparison(newTestRegressor)
	cmp.Add("Dropping Columns with Missing Values", preprocessing.NewColumnDropper())
	if _, err := cmp.Run(train, test, []float64{1, 2, 3, 4}, []float64{5, 6}); err == nil {
		t.Error("Run() should fail when the drop strategy removes every column")
	}
}

func TestStrategyResultString(t *testing.T) {
	r := StrategyResult{Name: "Imputation", MAE: 178.32451, Columns: 3}
	want := "Mean Absolute Error from Imputation: 178.32"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
