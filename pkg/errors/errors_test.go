package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "imputego: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "imputego: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("MeanImputer", "Transform")

	// 基本的なエラーメッセージの確認
	want := "imputego: MeanImputer: this model is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// NotFittedError型にキャスト可能か確認
	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewSchemaMismatchError(t *testing.T) {
	err := NewSchemaMismatchError("MeanImputer.Transform", []string{"a", "b"}, []string{"a", "c"})

	want := "imputego: MeanImputer.Transform: table schema mismatch. Expected columns [a, b], got [a, c]"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var smErr *SchemaMismatchError
	if !As(err, &smErr) {
		t.Error("Error should be castable to *SchemaMismatchError")
	}
	if len(smErr.Expected) != 2 || smErr.Expected[0] != "a" {
		t.Errorf("Expected columns not preserved: %v", smErr.Expected)
	}
}

func TestNewUndefinedStatisticError(t *testing.T) {
	err := NewUndefinedStatisticError("B", "mean")

	want := "imputego: mean of column 'B' is undefined: no observed values in training data"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var usErr *UndefinedStatisticError
	if !As(err, &usErr) {
		t.Error("Error should be castable to *UndefinedStatisticError")
	}
	if usErr.Column != "B" || usErr.Statistic != "mean" {
		t.Errorf("Fields not preserved: %+v", usErr)
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 10, 7, 1)

	want := "imputego: Predict: dimension mismatch on axis 1 (features). Expected 10, got 7"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) {
		captured = w
	})
	defer SetWarningHandler(nil)

	warning := NewDegenerateColumnWarning("B", "mean", 0)
	Warn(warning)

	if captured == nil {
		t.Fatal("Expected warning handler to be invoked")
	}
	if !strings.Contains(captured.Error(), "column 'B'") {
		t.Errorf("Unexpected warning message: %v", captured)
	}
}

func TestWrapPreservesType(t *testing.T) {
	base := NewUndefinedStatisticError("A", "mean")
	wrapped := Wrap(base, "fitting imputer")

	var usErr *UndefinedStatisticError
	if !As(wrapped, &usErr) {
		t.Error("Wrapped error should still be castable to *UndefinedStatisticError")
	}
	if !strings.Contains(wrapped.Error(), "fitting imputer") {
		t.Errorf("Wrap message missing: %v", wrapped)
	}
}
