package chart

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// pixelDPI makes one vg point one pixel.
const pixelDPI = 72

// BarChart renders bars with value labels above each bar and tick labels
// rotated 45 degrees.
func (r *Renderer) BarChart(title, xLabel, yLabel string, bars []Bar) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.BackgroundColor = white

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	if len(bars) > 0 {
		values := make(plotter.Values, len(bars))
		names := make([]string, len(bars))
		points := make(plotter.XYs, len(bars))
		texts := make([]string, len(bars))
		for i, b := range bars {
			values[i] = b.Value
			names[i] = b.Label
			points[i] = plotter.XY{X: float64(i), Y: b.Value}
			texts[i] = strconv.FormatFloat(b.Value, 'f', 2, 64)
		}

		bc, err := plotter.NewBarChart(values, r.barWidth(len(bars)))
		if err != nil {
			return nil, fmt.Errorf("failed to build bar chart: %w", err)
		}
		bc.Color = r.barColor
		bc.LineStyle.Color = r.barColor
		p.Add(bc)

		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: texts})
		if err != nil {
			return nil, fmt.Errorf("failed to build value labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XCenter
		}
		labels.Offset = vg.Point{Y: vg.Points(3)}
		p.Add(labels)

		p.NominalX(names...)
	}

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Min, p.Y.Max = valueRange(bars)

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(r.width), vg.Length(r.height)),
		vgimg.UseDPI(pixelDPI),
	)
	p.Draw(draw.New(c))
	return encode(c.Image())
}

// barWidth is half of each bar's slot across the plot area.
func (r *Renderer) barWidth(n int) vg.Length {
	area := float64(r.width - 100)
	return vg.Points(area / float64(n) * 0.5)
}
