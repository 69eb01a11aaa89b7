package dataset

import (
	"math/rand"

	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// TrainTestSplit はテーブルと目的変数を訓練用とテスト用に分割する。
// シードを固定すれば分割は決定的になり、複数の前処理戦略を同じ分割で
// 公平に比較できる。
//
// パラメータ:
//   - t: 特徴量テーブル
//   - y: 目的変数（tと同じ行数）
//   - testSize: テストに回す割合（0より大きく1未満）
//   - seed: 乱数シード
//
// 戻り値:
//   - train, test: 分割された特徴量テーブル
//   - yTrain, yTest: 分割された目的変数
//   - error: 行数の不一致やtestSizeが範囲外の場合
func TrainTestSplit(t *Table, y []float64, testSize float64, seed int64) (train, test *Table, yTrain, yTest []float64, err error) {
	if t.Rows() == 0 {
		return nil, nil, nil, nil, errors.NewModelError("TrainTestSplit", "empty table", errors.ErrEmptyData)
	}
	if len(y) != t.Rows() {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", t.Rows(), len(y), 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "testSize must be in (0, 1)")
	}

	n := t.Rows()
	nTest := int(float64(n) * testSize)
	if nTest == 0 {
		nTest = 1
	}
	if nTest == n {
		nTest = n - 1
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]

	train, err = t.TakeRows(trainIdx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	test, err = t.TakeRows(testIdx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	yTrain = make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		yTrain[i] = y[idx]
	}
	yTest = make([]float64, len(testIdx))
	for i, idx := range testIdx {
		yTest[i] = y[idx]
	}
	return train, test, yTrain, yTest, nil
}
