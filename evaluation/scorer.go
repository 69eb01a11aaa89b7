// Package evaluation は欠損値処理戦略を回帰モデルの汎化誤差で比較する
// パイプラインを提供する。
//
// 各戦略は訓練テーブルのみで学習され、訓練・テスト両方のテーブルを変換
// する。変換後のデータで回帰モデルを学習し、テストデータに対する平均
// 絶対誤差（MAE）を戦略のスコアとする。全ての戦略は同じ分割・同じ
// モデル設定で評価されるため、スコアの差は前処理の差だけを反映する。
package evaluation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/imputego/core/model"
	"github.com/YuminosukeSato/imputego/dataset"
	"github.com/YuminosukeSato/imputego/metrics"
	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// Strategy は比較対象となる欠損値処理戦略
type Strategy struct {
	// Name はレポートに表示される戦略名
	Name string

	// Transformer は戦略の実体
	Transformer model.TableTransformer
}

// StrategyResult は1つの戦略の評価結果
type StrategyResult struct {
	// Name は戦略名
	Name string

	// MAE はテストデータに対する平均絶対誤差
	MAE float64

	// Columns は変換後の特徴量数
	Columns int
}

// String はノートブック形式のレポート行を返す
func (r StrategyResult) String() string {
	return fmt.Sprintf("Mean Absolute Error from %s: %.2f", r.Name, r.MAE)
}

// ScoreModel は回帰モデルを訓練データで学習させ、テストデータに対する
// MAEを返す。モデル学習や予測の失敗はそのまま呼び出し元へ伝播する。
func ScoreModel(reg model.Regressor, XTrain, yTrain, XTest, yTest mat.Matrix) (float64, error) {
	if err := reg.Fit(XTrain, yTrain); err != nil {
		return 0, errors.Wrap(err, "ScoreModel: fitting model")
	}

	predictions, err := reg.Predict(XTest)
	if err != nil {
		return 0, errors.Wrap(err, "ScoreModel: predicting")
	}

	predVec, err := metrics.ColumnVec(predictions)
	if err != nil {
		return 0, err
	}
	trueVec, err := metrics.ColumnVec(yTest)
	if err != nil {
		return 0, err
	}
	return metrics.MAE(trueVec, predVec)
}

// Comparison は複数の戦略を同一条件で評価する
type Comparison struct {
	// NewRegressor は戦略ごとに新しい回帰モデルを作るファクトリ。
	// 同じ設定・同じシードのモデルを返すことで公平な比較になる。
	NewRegressor func() model.Regressor

	strategies []Strategy
}

// NewComparison は新しいComparisonを作成する
//
// 使用例:
//
//	cmp := evaluation.NewComparison(func() model.Regressor {
//	    return ensemble.NewRandomForestRegressor(
//	        ensemble.WithNEstimators(10),
//	        ensemble.WithRandomState(0),
//	    )
//	})
//	cmp.Add("Dropping Columns with Missing Values", preprocessing.NewColumnDropper())
//	cmp.Add("Imputation", preprocessing.NewMeanImputer())
//	results, err := cmp.Run(train, test, yTrain, yTest)
func NewComparison(newRegressor func() model.Regressor) *Comparison {
	return &Comparison{NewRegressor: newRegressor}
}

// Add は比較対象の戦略を追加する
func (c *Comparison) Add(name string, transformer model.TableTransformer) *Comparison {
	c.strategies = append(c.strategies, Strategy{Name: name, Transformer: transformer})
	return c
}

// Run は全ての戦略を順に評価し、追加順に結果を返す。
// いずれかの戦略が失敗した場合は評価全体を中断してエラーを返す。
// 前処理の失敗はデータ形状に起因する決定的なエラーであり、再試行しても
// 回復しないため。
func (c *Comparison) Run(train, test *dataset.Table, yTrain, yTest []float64) ([]StrategyResult, error) {
	if !train.SameSchema(test) {
		return nil, errors.NewSchemaMismatchError("Comparison.Run", train.Names(), test.Names())
	}
	if len(yTrain) != train.Rows() {
		return nil, errors.NewDimensionError("Comparison.Run: yTrain", train.Rows(), len(yTrain), 0)
	}
	if len(yTest) != test.Rows() {
		return nil, errors.NewDimensionError("Comparison.Run: yTest", test.Rows(), len(yTest), 0)
	}
	if len(c.strategies) == 0 {
		return nil, errors.NewValueError("Comparison.Run", "no strategies added")
	}

	yTrainMat := columnMatrix(yTrain)
	yTestMat := columnMatrix(yTest)

	results := make([]StrategyResult, 0, len(c.strategies))
	for _, s := range c.strategies {
		trainClean, err := s.Transformer.FitTransform(train)
		if err != nil {
			return nil, errors.Wrapf(err, "Comparison.Run: strategy '%s': transforming train", s.Name)
		}
		testClean, err := s.Transformer.Transform(test)
		if err != nil {
			return nil, errors.Wrapf(err, "Comparison.Run: strategy '%s': transforming test", s.Name)
		}

		XTrain, err := trainClean.Matrix()
		if err != nil {
			return nil, errors.Wrapf(err, "Comparison.Run: strategy '%s'", s.Name)
		}
		XTest, err := testClean.Matrix()
		if err != nil {
			return nil, errors.Wrapf(err, "Comparison.Run: strategy '%s'", s.Name)
		}

		mae, err := ScoreModel(c.NewRegressor(), XTrain, yTrainMat, XTest, yTestMat)
		if err != nil {
			return nil, errors.Wrapf(err, "Comparison.Run: strategy '%s': scoring", s.Name)
		}

		results = append(results, StrategyResult{
			Name:    s.Name,
			MAE:     mae,
			Columns: trainClean.Cols(),
		})
	}
	return results, nil
}

func columnMatrix(values []float64) *mat.Dense {
	data := make([]float64, len(values))
	copy(data, values)
	return mat.NewDense(len(values), 1, data)
}
