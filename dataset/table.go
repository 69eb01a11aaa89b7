// Package dataset はimputegoが扱う表形式データの抽象を提供する。
// テーブルは名前付きの数値列の順序付き集合であり、欠損値はmath.NaN()で表現される。
package dataset

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// Missing は欠損セルを表すセンチネル値
var Missing = math.NaN()

// IsMissing は値が欠損かどうかを返す
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Table は名前付き数値列の順序付き集合。
// 全ての列は同じ行数を持ち、行は列をまたいで位置で対応する。
// 派生操作（Drop, Append, Select）は新しいテーブルを返し、元のテーブルを変更しない。
type Table struct {
	names []string
	cols  [][]float64
	index map[string]int
	rows  int
}

// NewTable は列名と列データから新しいテーブルを作成する
//
// パラメータ:
//   - names: 列名（重複不可）
//   - cols: 列データ（全列同じ長さであること）
//
// 戻り値:
//   - *Table: 新しいテーブル
//   - error: 列名と列数の不一致、行数の不揃い、列名の重複がある場合
func NewTable(names []string, cols [][]float64) (*Table, error) {
	if len(names) != len(cols) {
		return nil, errors.NewDimensionError("NewTable", len(names), len(cols), 1)
	}

	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0])
	}

	index := make(map[string]int, len(names))
	copied := make([][]float64, len(cols))
	for j, col := range cols {
		if len(col) != rows {
			return nil, errors.NewDimensionError(fmt.Sprintf("NewTable: column '%s'", names[j]), rows, len(col), 0)
		}
		if _, ok := index[names[j]]; ok {
			return nil, errors.NewValueError("NewTable", fmt.Sprintf("duplicate column name '%s'", names[j]))
		}
		index[names[j]] = j

		c := make([]float64, rows)
		copy(c, col)
		copied[j] = c
	}

	return &Table{
		names: append([]string(nil), names...),
		cols:  copied,
		index: index,
		rows:  rows,
	}, nil
}

// FromMatrix はgonumの行列からテーブルを作成する
func FromMatrix(names []string, X mat.Matrix) (*Table, error) {
	r, c := X.Dims()
	if len(names) != c {
		return nil, errors.NewDimensionError("FromMatrix", len(names), c, 1)
	}

	cols := make([][]float64, c)
	for j := 0; j < c; j++ {
		col := make([]float64, r)
		for i := 0; i < r; i++ {
			col[i] = X.At(i, j)
		}
		cols[j] = col
	}
	return NewTable(names, cols)
}

// Rows は行数を返す
func (t *Table) Rows() int {
	return t.rows
}

// Cols は列数を返す
func (t *Table) Cols() int {
	return len(t.names)
}

// Names は列名を定義順で返す（コピー）
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// HasColumn は指定した名前の列が存在するかを返す
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column は指定した列の値を返す（コピー）
func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.NewModelError(fmt.Sprintf("Table.Column: '%s'", name), "column not found", errors.ErrColumnNotFound)
	}
	out := make([]float64, t.rows)
	copy(out, t.cols[j])
	return out, nil
}

// At は列名と行番号でセルの値を返す
func (t *Table) At(row int, name string) (float64, error) {
	j, ok := t.index[name]
	if !ok {
		return 0, errors.NewModelError(fmt.Sprintf("Table.At: '%s'", name), "column not found", errors.ErrColumnNotFound)
	}
	if row < 0 || row >= t.rows {
		return 0, errors.NewDimensionError("Table.At", t.rows, row, 0)
	}
	return t.cols[j][row], nil
}

// Matrix はテーブルをgonumのDense行列（行サンプル×列特徴量）に変換する。
// 行または列が空のテーブルは行列として表現できないためエラーになる。
func (t *Table) Matrix() (*mat.Dense, error) {
	if t.rows == 0 || len(t.cols) == 0 {
		return nil, errors.NewModelError("Table.Matrix", "empty table", errors.ErrEmptyData)
	}
	out := mat.NewDense(t.rows, len(t.cols), nil)
	for j, col := range t.cols {
		for i, v := range col {
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// Clone はテーブルの完全なコピーを返す
func (t *Table) Clone() *Table {
	clone, _ := NewTable(t.names, t.cols)
	return clone
}

// Drop は指定した列を取り除いた新しいテーブルを返す。
// 行数と行順は変化しない。存在しない列名はエラーになる。
func (t *Table) Drop(names ...string) (*Table, error) {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, errors.NewModelError(fmt.Sprintf("Table.Drop: '%s'", name), "column not found", errors.ErrColumnNotFound)
		}
		dropped[name] = true
	}

	var keepNames []string
	var keepCols [][]float64
	for j, name := range t.names {
		if dropped[name] {
			continue
		}
		keepNames = append(keepNames, name)
		keepCols = append(keepCols, t.cols[j])
	}
	return NewTable(keepNames, keepCols)
}

// Select は指定した列だけを指定順で持つ新しいテーブルを返す
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([][]float64, 0, len(names))
	for _, name := range names {
		j, ok := t.index[name]
		if !ok {
			return nil, errors.NewModelError(fmt.Sprintf("Table.Select: '%s'", name), "column not found", errors.ErrColumnNotFound)
		}
		cols = append(cols, t.cols[j])
	}
	return NewTable(names, cols)
}

// Append は末尾に列を追加した新しいテーブルを返す
func (t *Table) Append(name string, values []float64) (*Table, error) {
	if t.HasColumn(name) {
		return nil, errors.NewValueError("Table.Append", fmt.Sprintf("column '%s' already exists", name))
	}
	if t.Cols() > 0 && len(values) != t.rows {
		return nil, errors.NewDimensionError(fmt.Sprintf("Table.Append: column '%s'", name), t.rows, len(values), 0)
	}
	return NewTable(append(t.Names(), name), append(t.copyCols(), values))
}

// SetColumn は指定した列の値を置き換えた新しいテーブルを返す
func (t *Table) SetColumn(name string, values []float64) (*Table, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.NewModelError(fmt.Sprintf("Table.SetColumn: '%s'", name), "column not found", errors.ErrColumnNotFound)
	}
	if len(values) != t.rows {
		return nil, errors.NewDimensionError(fmt.Sprintf("Table.SetColumn: column '%s'", name), t.rows, len(values), 0)
	}
	cols := t.copyCols()
	c := make([]float64, len(values))
	copy(c, values)
	cols[j] = c
	return NewTable(t.names, cols)
}

// TakeRows は指定した行番号の行だけを指定順で持つ新しいテーブルを返す
func (t *Table) TakeRows(indices []int) (*Table, error) {
	cols := make([][]float64, len(t.cols))
	for j, col := range t.cols {
		sub := make([]float64, len(indices))
		for i, idx := range indices {
			if idx < 0 || idx >= t.rows {
				return nil, errors.NewDimensionError("Table.TakeRows", t.rows, idx, 0)
			}
			sub[i] = col[idx]
		}
		cols[j] = sub
	}
	return NewTable(t.names, cols)
}

// SameSchema は2つのテーブルが同じ列名を同じ順序で持つかを返す
func (t *Table) SameSchema(other *Table) bool {
	if other == nil || len(t.names) != len(other.names) {
		return false
	}
	for i, name := range t.names {
		if other.names[i] != name {
			return false
		}
	}
	return true
}

// CountMissing は指定した列の欠損セル数を返す
func (t *Table) CountMissing(name string) (int, error) {
	j, ok := t.index[name]
	if !ok {
		return 0, errors.NewModelError(fmt.Sprintf("Table.CountMissing: '%s'", name), "column not found", errors.ErrColumnNotFound)
	}
	n := 0
	for _, v := range t.cols[j] {
		if IsMissing(v) {
			n++
		}
	}
	return n, nil
}

// HasMissing はテーブル全体に欠損セルが一つでもあるかを返す
func (t *Table) HasMissing() bool {
	for _, col := range t.cols {
		for _, v := range col {
			if IsMissing(v) {
				return true
			}
		}
	}
	return false
}

// String はテーブルの概要を返す
func (t *Table) String() string {
	return fmt.Sprintf("Table(%d rows × %d columns: [%s])", t.rows, len(t.names), strings.Join(t.names, ", "))
}

func (t *Table) copyCols() [][]float64 {
	cols := make([][]float64, len(t.cols))
	copy(cols, t.cols)
	return cols
}
