package view

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type ChartFormat string

const (
	ChartPNG ChartFormat = "png"
	ChartSVG ChartFormat = "svg"
)

var (
	verifiedColor = drawing.ColorFromHex("1FB8CD")
	forgedColor   = drawing.ColorFromHex("DB4545")
)

func seriesStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		FillColor:   col.WithAlpha(25),
		DotColor:    col,
		DotWidth:    3,
	}
}

// RenderTrendChart draws the monthly trend. The chart is rebuilt on every call.
func RenderTrendChart(w io.Writer, format ChartFormat, trend Trend) error {
	xs := make([]float64, len(trend.Labels))
	ticks := make([]chart.Tick, len(trend.Labels))
	for i, label := range trend.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	maxY := 0.0
	for _, v := range append(append([]float64{}, trend.Verified...), trend.Forged...) {
		if v > maxY {
			maxY = v
		}
	}

	ch := chart.Chart{
		Title:      "Verification Trends",
		Width:      800,
		Height:     360,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Ticks: ticks},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1}},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Verified", XValues: xs, YValues: trend.Verified, Style: seriesStyle(verifiedColor)},
			chart.ContinuousSeries{Name: "Forged", XValues: xs, YValues: trend.Forged, Style: seriesStyle(forgedColor)},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var provider chart.RendererProvider
	switch format {
	case ChartPNG:
		provider = chart.PNG
	case ChartSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// ContentType returns the MIME type of a rendered chart.
func (f ChartFormat) ContentType() string {
	if f == ChartSVG {
		return "image/svg+xml"
	}
	return "image/png"
}
