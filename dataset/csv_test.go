package dataset

import (
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	csvData := `Rooms,Suburb,BuildingArea,Price
2,Richmond,100,500000
3,Abbotsford,NA,650000
4,Richmond,,800000
3,Carlton,120,`

	table, y, err := readCSV(strings.NewReader(csvData), "Price")
	if err != nil {
		t.Fatalf("readCSV() error = %v", err)
	}

	// Suburbは数値でないため除外され、目的変数欠損の最終行は落ちる
	names := table.Names()
	if len(names) != 2 || names[0] != "Rooms" || names[1] != "BuildingArea" {
		t.Errorf("columns = %v, want [Rooms, BuildingArea]", names)
	}
	if table.Rows() != 3 {
		t.Errorf("rows = %d, want 3", table.Rows())
	}
	if len(y) != 3 || y[0] != 500000 || y[2] != 800000 {
		t.Errorf("targets = %v", y)
	}

	// "NA"と空文字はNaNとして読み込まれる
	area, _ := table.Column("BuildingArea")
	if !IsMissing(area[1]) || !IsMissing(area[2]) {
		t.Errorf("missing tokens not converted: %v", area)
	}
	if area[0] != 100 {
		t.Errorf("observed value wrong: %v", area[0])
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		target string
	}{
		{
			name:   "missing target column",
			data:   "a,b\n1,2\n",
			target: "c",
		},
		{
			name:   "non-numeric target",
			data:   "a,b\n1,x\n",
			target: "b",
		},
		{
			name:   "no data rows",
			data:   "a,b\n",
			target: "b",
		},
		{
			name:   "all targets missing",
			data:   "a,b\n1,NA\n2,\n",
			target: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := readCSV(strings.NewReader(tt.data), tt.target); err == nil {
				t.Errorf("readCSV() should fail for %s", tt.name)
			}
		})
	}
}
