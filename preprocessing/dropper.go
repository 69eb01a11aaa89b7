package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/imputego/core/model"
	"github.com/YuminosukeSato/imputego/dataset"
	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// ColumnDropper は欠損を含む列を取り除く前処理戦略。
// 取り除く列の集合は訓練テーブルのみから決定され、Transformに渡された
// テーブルからは常に同じ列が取り除かれる。
type ColumnDropper struct {
	model.BaseEstimator

	// Dropped は学習時に欠損が見つかり、取り除く対象となった列名
	Dropped []string

	// schema は学習時の列構成
	schema []string
}

// NewColumnDropper は新しいColumnDropperを作成する
//
// 使用例:
//
//	dropper := preprocessing.NewColumnDropper()
//	err := dropper.Fit(train)
//	trainClean, err := dropper.Transform(train)
//	testClean, err := dropper.Transform(test)
func NewColumnDropper() *ColumnDropper {
	return &ColumnDropper{}
}

// Fit は訓練テーブルから取り除くべき列の集合を決定する
func (d *ColumnDropper) Fit(t *dataset.Table) error {
	if t.Rows() == 0 {
		return errors.NewModelError("ColumnDropper.Fit", "empty table", errors.ErrEmptyData)
	}

	d.schema = t.Names()
	d.Dropped = MissingColumns(t)
	d.SetFitted()
	return nil
}

// Transform は学習時に決定した列を取り除いた新しいテーブルを返す。
// 行数と行順は変化しない。
func (d *ColumnDropper) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnDropper", "Transform")
	}
	if err := checkSchema("ColumnDropper.Transform", d.schema, t); err != nil {
		return nil, err
	}

	if len(d.Dropped) == 0 {
		return t.Clone(), nil
	}
	return t.Drop(d.Dropped...)
}

// FitTransform はFitとTransformを同時に実行する
func (d *ColumnDropper) FitTransform(t *dataset.Table) (*dataset.Table, error) {
	if err := d.Fit(t); err != nil {
		return nil, err
	}
	return d.Transform(t)
}

// String は戦略の文字列表現を返す
func (d *ColumnDropper) String() string {
	if !d.IsFitted() {
		return "ColumnDropper()"
	}
	return fmt.Sprintf("ColumnDropper(dropped=%d)", len(d.Dropped))
}
