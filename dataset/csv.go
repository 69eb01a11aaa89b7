package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// missingTokens はCSV上で欠損値とみなす表記
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}

// ReadCSV はCSVファイルを読み込み、特徴量テーブルと目的変数を返す
//
// 1行目はヘッダとして列名に使われる。空文字や"NA"などの欠損表記はNaNに
// 変換される。数値として解釈できない列（カテゴリ列など）は特徴量から
// 除外され、DataConversionWarningが発生する。目的変数が欠損している行は
// 学習に使えないため取り除かれる。
//
// パラメータ:
//   - path: CSVファイルのパス
//   - target: 目的変数の列名（数値列であること）
//
// 戻り値:
//   - *Table: 特徴量テーブル（目的変数列を含まない）
//   - []float64: 目的変数
//   - error: ファイルの読み込みや解析に失敗した場合
func ReadCSV(path, target string) (*Table, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "ReadCSV: opening %s", path)
	}
	defer f.Close()

	return readCSV(f, target)
}

func readCSV(r io.Reader, target string) (*Table, []float64, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.Wrap(err, "ReadCSV: reading header")
	}

	targetCol := -1
	for j, name := range header {
		if name == target {
			targetCol = j
		}
	}
	if targetCol < 0 {
		return nil, nil, errors.NewValueError("ReadCSV", fmt.Sprintf("target column '%s' not found in header", target))
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "ReadCSV: reading record")
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, nil, errors.NewModelError("ReadCSV", "no data rows", errors.ErrEmptyData)
	}

	// 数値として解釈できる列だけを特徴量として採用する
	numeric := make([]bool, len(header))
	for j := range header {
		numeric[j] = true
		for _, rec := range records {
			if missingTokens[rec[j]] {
				continue
			}
			if _, err := strconv.ParseFloat(rec[j], 64); err != nil {
				numeric[j] = false
				break
			}
		}
		if !numeric[j] && j != targetCol {
			errors.Warn(errors.NewDataConversionWarning(
				"string", "excluded",
				fmt.Sprintf("column '%s' contains non-numeric values", header[j])))
		}
	}
	if !numeric[targetCol] {
		return nil, nil, errors.NewValueError("ReadCSV", fmt.Sprintf("target column '%s' is not numeric", target))
	}

	var names []string
	var featureIdx []int
	for j, name := range header {
		if j == targetCol || !numeric[j] {
			continue
		}
		names = append(names, name)
		featureIdx = append(featureIdx, j)
	}

	cols := make([][]float64, len(names))
	for j := range cols {
		cols[j] = make([]float64, 0, len(records))
	}
	var y []float64

	for _, rec := range records {
		// 目的変数が欠損している行は学習に使えない
		if missingTokens[rec[targetCol]] {
			continue
		}
		t, err := strconv.ParseFloat(rec[targetCol], 64)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "ReadCSV: parsing target '%s'", rec[targetCol])
		}
		y = append(y, t)

		for k, j := range featureIdx {
			if missingTokens[rec[j]] {
				cols[k] = append(cols[k], Missing)
				continue
			}
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "ReadCSV: parsing value '%s' in column '%s'", rec[j], names[k])
			}
			cols[k] = append(cols[k], v)
		}
	}
	if len(y) == 0 {
		return nil, nil, errors.NewModelError("ReadCSV", "all rows have a missing target", errors.ErrEmptyData)
	}

	table, err := NewTable(names, cols)
	if err != nil {
		return nil, nil, err
	}
	return table, y, nil
}
