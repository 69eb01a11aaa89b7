package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/imputego/core/model"
	"github.com/YuminosukeSato/imputego/dataset"
	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// MeanImputer はscikit-learnのSimpleImputer(strategy="mean")に相当する
// 前処理戦略。各列の平均を訓練テーブルの観測値のみから計算し、訓練・
// テスト両方の欠損セルを同じ値で埋める。
//
// 訓練テーブルで全セルが欠損している列は平均が定義できない。デフォルト
// ではFitがUndefinedStatisticErrorで失敗する。NewMeanImputerWithFallback
// で作成した場合は代わりにフォールバック定数が使われ、
// DegenerateColumnWarningが発生する。
type MeanImputer struct {
	model.BaseEstimator

	// Columns は学習時の列構成
	Columns []string

	// Means は各列の訓練平均（Columnsと同じ順序）
	Means []float64

	// Fallback は平均が定義できない列に使う定数
	Fallback float64

	// UseFallback はフォールバックを有効にするかどうか
	UseFallback bool
}

// NewMeanImputer は新しいMeanImputerを作成する。
// 全セルが欠損した列に遭遇するとFitはエラーになる。
//
// 使用例:
//
//	imputer := preprocessing.NewMeanImputer()
//	trainClean, err := imputer.FitTransform(train)
//	testClean, err := imputer.Transform(test)
func NewMeanImputer() *MeanImputer {
	return &MeanImputer{}
}

// NewMeanImputerWithFallback はフォールバック定数付きのMeanImputerを作成する。
// 全セルが欠損した列の平均はfallbackで代用され、警告が発生する。
func NewMeanImputerWithFallback(fallback float64) *MeanImputer {
	return &MeanImputer{Fallback: fallback, UseFallback: true}
}

// Fit は訓練テーブルから各列の平均を計算する
//
// パラメータ:
//   - t: 訓練テーブル
//
// 戻り値:
//   - error: 空のテーブル、または平均が定義できない列がある場合
func (m *MeanImputer) Fit(t *dataset.Table) error {
	if t.Rows() == 0 || t.Cols() == 0 {
		return errors.NewModelError("MeanImputer.Fit", "empty table", errors.ErrEmptyData)
	}

	names := t.Names()
	means := make([]float64, len(names))

	for j, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return err
		}

		sum := 0.0
		observed := 0
		for _, v := range col {
			if dataset.IsMissing(v) {
				continue
			}
			sum += v
			observed++
		}

		if observed == 0 {
			// 観測値ゼロの列は平均が定義できない
			if !m.UseFallback {
				return errors.NewUndefinedStatisticError(name, "mean")
			}
			errors.Warn(errors.NewDegenerateColumnWarning(name, "mean", m.Fallback))
			means[j] = m.Fallback
			continue
		}
		means[j] = sum / float64(observed)
	}

	m.Columns = names
	m.Means = means
	m.SetFitted()
	return nil
}

// Transform は欠損セルを訓練平均で埋めた新しいテーブルを返す。
// 既に補完済みのテーブルに再適用しても値は変化しない（冪等）。
func (m *MeanImputer) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MeanImputer", "Transform")
	}
	if err := checkSchema("MeanImputer.Transform", m.Columns, t); err != nil {
		return nil, err
	}

	out := t
	for j, name := range m.Columns {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}

		changed := false
		for i, v := range col {
			if dataset.IsMissing(v) {
				col[i] = m.Means[j]
				changed = true
			}
		}
		if !changed {
			continue
		}

		out, err = out.SetColumn(name, col)
		if err != nil {
			return nil, err
		}
	}

	if out == t {
		return t.Clone(), nil
	}
	return out, nil
}

// FitTransform は訓練テーブルで学習し、同じテーブルを変換する
func (m *MeanImputer) FitTransform(t *dataset.Table) (*dataset.Table, error) {
	if err := m.Fit(t); err != nil {
		return nil, err
	}
	return m.Transform(t)
}

// Mean は指定した列の学習済み平均を返す
func (m *MeanImputer) Mean(column string) (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("MeanImputer", "Mean")
	}
	for j, name := range m.Columns {
		if name == column {
			return m.Means[j], nil
		}
	}
	return 0, errors.NewModelError(fmt.Sprintf("MeanImputer.Mean: '%s'", column), "column not found", errors.ErrColumnNotFound)
}

// String は戦略の文字列表現を返す
func (m *MeanImputer) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MeanImputer(use_fallback=%t)", m.UseFallback)
	}
	return fmt.Sprintf("MeanImputer(use_fallback=%t, n_columns=%d)", m.UseFallback, len(m.Columns))
}
