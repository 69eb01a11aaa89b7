// Package preprocessing は欠損値を含むテーブルをモデル学習に使える形へ
// 変換する前処理を提供する。
//
// 3つの戦略が用意されている:
//   - ColumnDropper: 欠損を含む列を取り除く
//   - MeanImputer: 欠損セルを訓練データの列平均で埋める
//   - TrackedMeanImputer: 平均補完に加えて、どのセルが欠損していたかを
//     示すインジケータ列を追加する
//
// いずれの戦略も統計量（対象列の集合・列平均）は訓練テーブルのみから
// 学習され、テストテーブルにはそのまま適用される。テスト側の情報が
// 統計量に漏れることはない。
package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/imputego/dataset"
	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// MissingColumns は欠損セルを一つ以上含む列の名前をテーブルの列順で返す。
// 全セルが欠損している列も対象になる。副作用はない。
func MissingColumns(t *dataset.Table) []string {
	var flagged []string
	for _, name := range t.Names() {
		n, err := t.CountMissing(name)
		if err != nil {
			// Namesから得た列名なので到達しない
			continue
		}
		if n > 0 {
			flagged = append(flagged, name)
		}
	}
	return flagged
}

// MissingMask は指定した列の行ごとの欠損フラグを返す
func MissingMask(t *dataset.Table, name string) ([]bool, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, errors.Wrapf(err, "MissingMask: column '%s'", name)
	}
	mask := make([]bool, len(col))
	for i, v := range col {
		mask[i] = dataset.IsMissing(v)
	}
	return mask, nil
}

// checkSchema は学習時と同じ列構成かを検証する共通処理
func checkSchema(op string, fitted []string, t *dataset.Table) error {
	got := t.Names()
	if len(got) != len(fitted) {
		return errors.NewSchemaMismatchError(op, fitted, got)
	}
	for i, name := range fitted {
		if got[i] != name {
			return errors.NewSchemaMismatchError(op, fitted, got)
		}
	}
	return nil
}

// indicatorName はインジケータ列の命名規約を返す
func indicatorName(column string) string {
	return fmt.Sprintf("%s%s", column, IndicatorSuffix)
}

// IndicatorSuffix はインジケータ列の名前に付く接尾辞
const IndicatorSuffix = "_was_missing"
