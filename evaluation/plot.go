package evaluation

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/imputego/pkg/errors"
)

// SavePlot は戦略ごとのMAEを棒グラフとして画像ファイルに保存する。
// 出力形式は拡張子から決まる（.png, .svg, .pdfなど）。
func SavePlot(results []StrategyResult, path string) error {
	if len(results) == 0 {
		return errors.NewValueError("SavePlot", "no results to plot")
	}

	p := plot.New()
	p.Title.Text = "Mean Absolute Error by Strategy"
	p.Y.Label.Text = "MAE"

	values := make(plotter.Values, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		values[i] = r.MAE
		names[i] = r.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return errors.Wrap(err, "SavePlot: creating bar chart")
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "SavePlot: saving %s", path)
	}
	return nil
}
