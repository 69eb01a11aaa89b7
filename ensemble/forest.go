package ensemble

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/imputego/core/model"
	"github.com/YuminosukeSato/imputego/core/parallel"
	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// RandomForestRegressor はブートストラップサンプリングした回帰木の
// アンサンブル。予測は全ての木の平均になる。
//
// RandomStateを固定すれば学習は決定的になる。各木にはRandomStateから
// 導出された固有のシードが与えられ、木の学習はCPUコア数に応じて並列に
// 実行される。
type RandomForestRegressor struct {
	model.BaseEstimator

	// NEstimators は木の本数
	NEstimators int

	// MaxDepth は各木の最大深さ（0は無制限）
	MaxDepth int

	// MinSamplesSplit は分割を試みる最小サンプル数
	MinSamplesSplit int

	// MaxFeatures は分割探索でサンプリングする特徴量数（0は全特徴量）
	MaxFeatures int

	// Bootstrap はブートストラップサンプリングを行うかどうか
	Bootstrap bool

	// RandomState は乱数シード
	RandomState int64

	// NFeatures は学習時の特徴量数
	NFeatures int

	// Trees は学習済みの木
	Trees []*DecisionTreeRegressor
}

// ForestOption はRandomForestRegressorの設定オプション
type ForestOption func(*RandomForestRegressor)

func WithNEstimators(n int) ForestOption {
	return func(rf *RandomForestRegressor) { rf.NEstimators = n }
}

func WithMaxDepth(d int) ForestOption {
	return func(rf *RandomForestRegressor) { rf.MaxDepth = d }
}

func WithMinSamplesSplit(n int) ForestOption {
	return func(rf *RandomForestRegressor) { rf.MinSamplesSplit = n }
}

func WithMaxFeatures(k int) ForestOption {
	return func(rf *RandomForestRegressor) { rf.MaxFeatures = k }
}

func WithBootstrap(b bool) ForestOption {
	return func(rf *RandomForestRegressor) { rf.Bootstrap = b }
}

func WithRandomState(seed int64) ForestOption {
	return func(rf *RandomForestRegressor) { rf.RandomState = seed }
}

// NewRandomForestRegressor はデフォルト設定のランダムフォレスト回帰器を作成する
//
// デフォルト値:
//   - NEstimators: 100
//   - MaxDepth: 0（無制限）
//   - MinSamplesSplit: 2
//   - MaxFeatures: 0（全特徴量）
//   - Bootstrap: true
//   - RandomState: 0（決定的）
//
// 使用例:
//
//	rf := ensemble.NewRandomForestRegressor(
//	    ensemble.WithNEstimators(10),
//	    ensemble.WithRandomState(0),
//	)
//	err := rf.Fit(X, y)
//	predictions, err := rf.Predict(XTest)
func NewRandomForestRegressor(opts ...ForestOption) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		NEstimators:     100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MaxFeatures:     0,
		Bootstrap:       true,
		RandomState:     0,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit はランダムフォレストを訓練データで学習させる。
// 木の学習は並列に行われるが、各木のシードはRandomStateから導出される
// ため結果は決定的になる。
func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("RandomForestRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("RandomForestRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("RandomForestRegressor.Fit", "y must be a column vector")
	}
	if rf.NEstimators <= 0 {
		return errors.NewValueError("RandomForestRegressor.Fit", "NEstimators must be positive")
	}

	rows := make([][]float64, r)
	targets := make([]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		rows[i] = row
		targets[i] = y.At(i, 0)
	}

	rf.NFeatures = c
	rf.Trees = make([]*DecisionTreeRegressor, rf.NEstimators)
	fitErrs := make([]error, rf.NEstimators)

	parallel.ParallelizeIndexed(rf.NEstimators, func(i int) {
		// 木ごとに固有のシードを導出して決定性を保つ
		seed := rf.RandomState + int64(i)
		rng := rand.New(rand.NewSource(seed))

		sampleRows := rows
		sampleTargets := targets
		if rf.Bootstrap {
			sampleRows = make([][]float64, r)
			sampleTargets = make([]float64, r)
			for k := 0; k < r; k++ {
				idx := rng.Intn(r)
				sampleRows[k] = rows[idx]
				sampleTargets[k] = targets[idx]
			}
		}

		tree := NewDecisionTreeRegressor(
			WithTreeMaxDepth(rf.MaxDepth),
			WithTreeMinSamplesSplit(rf.MinSamplesSplit),
			WithTreeMaxFeatures(rf.MaxFeatures),
			WithTreeRandomState(seed),
		)
		if err := tree.fitRows(sampleRows, sampleTargets); err != nil {
			fitErrs[i] = err
			return
		}
		rf.Trees[i] = tree
	})

	for _, err := range fitErrs {
		if err != nil {
			return errors.Wrap(err, "RandomForestRegressor.Fit: training tree")
		}
	}

	rf.SetFitted()
	return nil
}

// Predict は全ての木の予測の平均を返す
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != rf.NFeatures {
		return nil, errors.NewDimensionError("RandomForestRegressor.Predict", rf.NFeatures, c, 1)
	}

	treePreds := make([]mat.Matrix, len(rf.Trees))
	predErrs := make([]error, len(rf.Trees))
	parallel.ParallelizeIndexed(len(rf.Trees), func(i int) {
		treePreds[i], predErrs[i] = rf.Trees[i].Predict(X)
	})
	for _, err := range predErrs {
		if err != nil {
			return nil, errors.Wrap(err, "RandomForestRegressor.Predict")
		}
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		sum := 0.0
		for _, preds := range treePreds {
			sum += preds.At(i, 0)
		}
		predictions.Set(i, 0, sum/float64(len(rf.Trees)))
	}
	return predictions, nil
}

// String はモデルの文字列表現を返す
func (rf *RandomForestRegressor) String() string {
	if !rf.IsFitted() {
		return fmt.Sprintf("RandomForestRegressor(n_estimators=%d, random_state=%d)", rf.NEstimators, rf.RandomState)
	}
	return fmt.Sprintf("RandomForestRegressor(n_estimators=%d, random_state=%d, n_features=%d)",
		rf.NEstimators, rf.RandomState, rf.NFeatures)
}
