package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/imputego/core/model"
	"github.com/YuminosukeSato/imputego/dataset"
	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// TrackedMeanImputer は平均補完に加えて、どのセルが元々欠損していたかを
// 記録するインジケータ列を追加する前処理戦略。
//
// 訓練テーブルで欠損が見つかった各列cについて、c+"_was_missing"という
// 名前の列が訓練・テスト両方に追加される。インジケータの値は補完前の
// そのテーブル自身の欠損状態から計算される（補完後は定義上何も欠損して
// いないため、順序が重要）。インジケータ列の追加後に平均補完が適用される。
type TrackedMeanImputer struct {
	model.BaseEstimator

	// Flagged は訓練テーブルで欠損が見つかり、インジケータが追加される列名
	Flagged []string

	// Imputer はインジケータ追加後のテーブルに適用される平均補完器
	Imputer *MeanImputer

	// schema は学習時の（インジケータ追加前の）列構成
	schema []string
}

// NewTrackedMeanImputer は新しいTrackedMeanImputerを作成する
//
// 使用例:
//
//	imputer := preprocessing.NewTrackedMeanImputer()
//	trainClean, err := imputer.FitTransform(train)
//	testClean, err := imputer.Transform(test)
func NewTrackedMeanImputer() *TrackedMeanImputer {
	return &TrackedMeanImputer{Imputer: NewMeanImputer()}
}

// NewTrackedMeanImputerWithFallback はフォールバック定数付きの
// TrackedMeanImputerを作成する
func NewTrackedMeanImputerWithFallback(fallback float64) *TrackedMeanImputer {
	return &TrackedMeanImputer{Imputer: NewMeanImputerWithFallback(fallback)}
}

// Fit は訓練テーブルからインジケータ対象列を決定し、インジケータ追加後の
// テーブルで平均補完器を学習する
func (tr *TrackedMeanImputer) Fit(t *dataset.Table) error {
	if t.Rows() == 0 || t.Cols() == 0 {
		return errors.NewModelError("TrackedMeanImputer.Fit", "empty table", errors.ErrEmptyData)
	}

	flagged := MissingColumns(t)
	for _, name := range flagged {
		if t.HasColumn(indicatorName(name)) {
			return errors.NewValueError("TrackedMeanImputer.Fit",
				fmt.Sprintf("indicator column '%s' collides with an existing column", indicatorName(name)))
		}
	}

	tr.schema = t.Names()
	tr.Flagged = flagged

	augmented, err := tr.augment(t)
	if err != nil {
		return err
	}
	if err := tr.Imputer.Fit(augmented); err != nil {
		return err
	}

	tr.SetFitted()
	return nil
}

// Transform はインジケータ列を追加した上で欠損セルを訓練平均で埋めた
// 新しいテーブルを返す。出力の列数は入力の列数+対象列数になり、
// 行数と行順は変化しない。
func (tr *TrackedMeanImputer) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !tr.IsFitted() {
		return nil, errors.NewNotFittedError("TrackedMeanImputer", "Transform")
	}
	if err := checkSchema("TrackedMeanImputer.Transform", tr.schema, t); err != nil {
		return nil, err
	}

	augmented, err := tr.augment(t)
	if err != nil {
		return nil, err
	}
	return tr.Imputer.Transform(augmented)
}

// FitTransform はFitとTransformを同時に実行する
func (tr *TrackedMeanImputer) FitTransform(t *dataset.Table) (*dataset.Table, error) {
	if err := tr.Fit(t); err != nil {
		return nil, err
	}
	return tr.Transform(t)
}

// augment は対象列ごとのインジケータ列を末尾に追加した新しいテーブルを返す。
// インジケータはこのテーブル自身の補完前の欠損状態から計算される。
func (tr *TrackedMeanImputer) augment(t *dataset.Table) (*dataset.Table, error) {
	out := t
	for _, name := range tr.Flagged {
		mask, err := MissingMask(t, name)
		if err != nil {
			return nil, err
		}

		indicator := make([]float64, len(mask))
		for i, missing := range mask {
			if missing {
				indicator[i] = 1.0
			}
		}

		out, err = out.Append(indicatorName(name), indicator)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// String は戦略の文字列表現を返す
func (tr *TrackedMeanImputer) String() string {
	if !tr.IsFitted() {
		return "TrackedMeanImputer()"
	}
	return fmt.Sprintf("TrackedMeanImputer(flagged=%d)", len(tr.Flagged))
}
