// Package ensemble は回帰木とそのアンサンブルであるランダムフォレスト
// 回帰器を提供する。scikit-learnのRandomForestRegressorに相当するAPIを
// 持ち、欠損値処理戦略のスコアリングに使われる。
package ensemble

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/imputego/core/model"
	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// DecisionTreeRegressor はCART方式の回帰木。
// 分散減少を基準に分割し、葉の予測値はその葉に属する目的変数の平均になる。
// 入力のNaNは扱えないため、欠損は事前にpreprocessingで処理しておくこと。
type DecisionTreeRegressor struct {
	model.BaseEstimator

	// MaxDepth は木の最大深さ（0は無制限）
	MaxDepth int

	// MinSamplesSplit は分割を試みる最小サンプル数
	MinSamplesSplit int

	// MaxFeatures は分割探索でサンプリングする特徴量数（0は全特徴量）
	MaxFeatures int

	// RandomState は特徴量サンプリングの乱数シード
	RandomState int64

	// NFeatures は学習時の特徴量数
	NFeatures int

	root *treeNode
}

// treeNode は回帰木のノード。
// 葉ではvalueが予測値、内部ノードではx[feature] <= thresholdで左へ進む。
type treeNode struct {
	isLeaf    bool
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
}

// TreeOption はDecisionTreeRegressorの設定オプション
type TreeOption func(*DecisionTreeRegressor)

func WithTreeMaxDepth(d int) TreeOption {
	return func(t *DecisionTreeRegressor) { t.MaxDepth = d }
}

func WithTreeMinSamplesSplit(n int) TreeOption {
	return func(t *DecisionTreeRegressor) { t.MinSamplesSplit = n }
}

func WithTreeMaxFeatures(k int) TreeOption {
	return func(t *DecisionTreeRegressor) { t.MaxFeatures = k }
}

func WithTreeRandomState(seed int64) TreeOption {
	return func(t *DecisionTreeRegressor) { t.RandomState = seed }
}

// NewDecisionTreeRegressor はデフォルト設定の回帰木を作成する
func NewDecisionTreeRegressor(opts ...TreeOption) *DecisionTreeRegressor {
	t := &DecisionTreeRegressor{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MaxFeatures:     0,
		RandomState:     0,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit は回帰木を訓練データで学習させる
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//   - y: 目的変数 (n_samples × 1 の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (t *DecisionTreeRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("DecisionTreeRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("DecisionTreeRegressor.Fit", "y must be a column vector")
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

	return t.fitRows(rows, targets)
}

// fitRows はスライス形式の訓練データで学習する（forestのブートストラップ用）
func (t *DecisionTreeRegressor) fitRows(rows [][]float64, targets []float64) error {
	if len(rows) == 0 {
		return errors.NewModelError("DecisionTreeRegressor.Fit", "empty data", errors.ErrEmptyData)
	}

	t.NFeatures = len(rows[0])
	rng := rand.New(rand.NewSource(t.RandomState))

	indices := make([]int, len(rows))
	for i := range indices {
		indices[i] = i
	}

	t.root = t.build(rows, targets, indices, 0, rng)
	t.SetFitted()
	return nil
}

// Predict は入力データに対する予測を行う
func (t *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTreeRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("DecisionTreeRegressor.Predict", t.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		predictions.Set(i, 0, t.predictRow(row))
	}
	return predictions, nil
}

func (t *DecisionTreeRegressor) predictRow(row []float64) float64 {
	node := t.root
	for !node.isLeaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// build は再帰的にノードを構築する
func (t *DecisionTreeRegressor) build(rows [][]float64, targets []float64, indices []int, depth int, rng *rand.Rand) *treeNode {
	leaf := &treeNode{isLeaf: true, value: meanOf(targets, indices)}

	if len(indices) < t.MinSamplesSplit {
		return leaf
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return leaf
	}

	feature, threshold, ok := t.bestSplit(rows, targets, indices, rng)
	if !ok {
		return leaf
	}

	var left, right []int
	for _, idx := range indices {
		if rows[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      t.build(rows, targets, left, depth+1, rng),
		right:     t.build(rows, targets, right, depth+1, rng),
	}
}

// bestSplit は二乗誤差の減少が最大になる分割を探す。
// 各特徴量について値でソートし、隣接する異なる値の中点を分割候補にする。
func (t *DecisionTreeRegressor) bestSplit(rows [][]float64, targets []float64, indices []int, rng *rand.Rand) (feature int, threshold float64, ok bool) {
	n := len(indices)
	nFeatures := t.NFeatures

	candidates := make([]int, nFeatures)
	for j := range candidates {
		candidates[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < nFeatures {
		rng.Shuffle(nFeatures, func(a, b int) {
			candidates[a], candidates[b] = candidates[b], candidates[a]
		})
		candidates = candidates[:t.MaxFeatures]
	}

	bestScore := math.Inf(1)
	sorted := make([]int, n)

	for _, j := range candidates {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool {
			return rows[sorted[a]][j] < rows[sorted[b]][j]
		})

		// 左右の二乗誤差を逐次更新しながら分割点を走査する
		var leftSum, leftSq float64
		rightSum, rightSq := 0.0, 0.0
		for _, idx := range sorted {
			rightSum += targets[idx]
			rightSq += targets[idx] * targets[idx]
		}

		for i := 0; i < n-1; i++ {
			v := targets[sorted[i]]
			leftSum += v
			leftSq += v * v
			rightSum -= v
			rightSq -= v * v

			cur := rows[sorted[i]][j]
			next := rows[sorted[i+1]][j]
			if cur == next {
				continue
			}

			nl := float64(i + 1)
			nr := float64(n - i - 1)
			// SSE = Σy² - (Σy)²/n
			score := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if score < bestScore {
				bestScore = score
				feature = j
				threshold = (cur + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func meanOf(targets []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	sum := 0.0
	for _, idx := range indices {
		sum += targets[idx]
	}
	return sum / float64(len(indices))
}
