package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMAE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "constant offset",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.5, // (0.5 + 0.5 + 0.5 + 0.5) / 4
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "mixed signs",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      7.0 / 3.0, // (2 + 2 + 3) / 3
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "dimension mismatch",
			yTrue:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:     mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr:   true,
		},
		{
			name:      "empty vectors",
			yTrue:     &mat.VecDense{},
			yPred:     &mat.VecDense{},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MAE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MAE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if math.Abs(got-tt.want) > tt.tolerance {
					t.Errorf("MAE() = %v, want %v (tolerance: %v)", got, tt.want, tt.tolerance)
				}
			}
		})
	}
}

func TestMSEAndRMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	mse, err := MSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MSE() error = %v", err)
	}
	if math.Abs(mse-0.25) > 1e-10 {
		t.Errorf("MSE() = %v, want 0.25", mse)
	}

	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() error = %v", err)
	}
	if math.Abs(rmse-0.5) > 1e-10 {
		t.Errorf("RMSE() = %v, want 0.5", rmse)
	}
}

func TestR2Score(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})

	// 完全な予測はR²=1
	perfect, err := R2Score(yTrue, yTrue)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if math.Abs(perfect-1.0) > 1e-10 {
		t.Errorf("R2Score(perfect) = %v, want 1.0", perfect)
	}

	// 平均を返すだけの予測はR²=0
	meanPred := mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5})
	zero, err := R2Score(yTrue, meanPred)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if math.Abs(zero) > 1e-10 {
		t.Errorf("R2Score(mean) = %v, want 0.0", zero)
	}

	// yTrueに分散が無い場合はエラー
	flat := mat.NewVecDense(3, []float64{5, 5, 5})
	if _, err := R2Score(flat, flat); err == nil {
		t.Error("R2Score() with zero variance should fail")
	}
}

func TestColumnVec(t *testing.T) {
	m := mat.NewDense(3, 1, []float64{1, 2, 3})

	vec, err := ColumnVec(m)
	if err != nil {
		t.Fatalf("ColumnVec() error = %v", err)
	}
	if vec.Len() != 3 || vec.AtVec(2) != 3 {
		t.Errorf("ColumnVec() = %v", vec)
	}

	// 複数列の行列は変換できない
	wide := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := ColumnVec(wide); err == nil {
		t.Error("ColumnVec() with multiple columns should fail")
	}
}
