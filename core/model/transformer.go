package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/imputego/dataset"
)

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// TableTransformer は名前付き列テーブルに対するデータ変換のインターフェース。
// 欠損値処理のように、列名に依存する変換はこちらを実装する。
// 統計量は常に訓練テーブルのみから学習され、Transformは入力を変更せず
// 新しいテーブルを返す。
type TableTransformer interface {
	// Fit は訓練テーブルから変換に必要なパラメータを学習する
	Fit(t *dataset.Table) error

	// Transform は学習済みのパラメータでテーブルを変換した新しいテーブルを返す
	Transform(t *dataset.Table) (*dataset.Table, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(t *dataset.Table) (*dataset.Table, error)
}
