package preprocessing

import (
	"testing"

	"github.com/YuminosukeSato/imputego/dataset"
)

func mustTable(t *testing.T, names []string, cols [][]float64) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable(names, cols)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestMissingColumns(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		cols  [][]float64
		want  []string
	}{
		{
			name:  "partially and fully missing columns",
			names: []string{"A", "B"},
			cols:  [][]float64{{1, dataset.Missing, 3}, {dataset.Missing, dataset.Missing, dataset.Missing}},
			want:  []string{"A", "B"},
		},
		{
			name:  "no missing values",
			names: []string{"A", "B"},
			cols:  [][]float64{{1, 2}, {3, 4}},
			want:  nil,
		},
		{
			name:  "single missing cell",
			names: []string{"A", "B", "C"},
			cols:  [][]float64{{1, 2}, {3, dataset.Missing}, {5, 6}},
			want:  []string{"B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := mustTable(t, tt.names, tt.cols)
			got := MissingColumns(table)

			if len(got) != len(tt.want) {
				t.Fatalf("MissingColumns() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("MissingColumns() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMissingMask(t *testing.T) {
	table := mustTable(t, []string{"A"}, [][]float64{{1, dataset.Missing, 3}})

	mask, err := MissingMask(table, "A")
	if err != nil {
		t.Fatalf("MissingMask() error = %v", err)
	}

	want := []bool{false, true, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("MissingMask() = %v, want %v", mask, want)
		}
	}

	if _, err := MissingMask(table, "X"); err == nil {
		t.Error("MissingMask() with unknown column should fail")
	}
}
