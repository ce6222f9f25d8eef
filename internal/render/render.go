// Package render draws pre-aggregated ChartSpecs as SVG or PNG images. It
// never aggregates: every value comes straight from the ChartSpec data points.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/AishaAlajmi/AutoDash/internal/analysis"
)

// Format is an image output format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ErrNoData is returned for a chart with nothing drawable.
var ErrNoData = errors.New("chart has no drawable data")

// ParseFormat accepts "svg" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case SVG, "":
		return SVG, nil
	case PNG:
		return PNG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q (use svg or png)", s)
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string { return "." + string(f) }

func (f Format) provider() chart.RendererProvider {
	if f == PNG {
		return chart.PNG
	}
	return chart.SVG
}

const (
	minWidth  = 1024
	height    = 512
	barWidth  = 40
	barGap    = 16
	axisSpace = 160
)

var (
	strokeColor = drawing.ColorFromHex("1f77b4")
	gridColor   = drawing.ColorFromHex("efefef")
)

// Render draws a ChartSpec in its current display type.
func Render(spec analysis.ChartSpec, format Format, w io.Writer) error {
	if len(spec.Data) == 0 {
		return ErrNoData
	}
	typ := spec.CurrentType
	if typ == "" {
		typ = spec.Type
	}
	if !typ.Valid() {
		return analysis.ErrUnknownChartType
	}
	switch typ {
	case analysis.ChartPie:
		return renderPie(spec, format, w)
	case analysis.ChartLine:
		if len(spec.Data) > 1 {
			return renderLine(spec, format, w)
		}
	case analysis.ChartArea:
		if len(spec.Data) > 1 {
			return renderArea(spec, format, w)
		}
	}
	return renderBar(spec, format, w)
}

// pointLabel is the category name or, for time series, the day.
func pointLabel(p analysis.Point) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Date
}

// pointValue falls back to the count for count-only composed records.
func pointValue(p analysis.Point) float64 {
	if p.Value == 0 && p.Count > 0 {
		return float64(p.Count)
	}
	return p.Value
}

// valueRange spans zero and every value, padded so the delta is never zero.
func valueRange(data []analysis.Point) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, p := range data {
		v := pointValue(p)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}

func background() chart.Style {
	return chart.Style{
		Padding:     chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		FillColor:   drawing.ColorWhite,
		StrokeColor: gridColor,
		StrokeWidth: 1,
	}
}

func renderBar(spec analysis.ChartSpec, format Format, w io.Writer) error {
	bars := make([]chart.Value, 0, len(spec.Data))
	for _, p := range spec.Data {
		bars = append(bars, chart.Value{Label: pointLabel(p), Value: pointValue(p)})
	}
	width := len(bars)*(barWidth+barGap) + axisSpace
	if width < minWidth {
		width = minWidth
	}
	graph := chart.BarChart{
		Title:      spec.Title,
		Background: background(),
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barGap,
		Bars:       bars,
		YAxis: chart.YAxis{
			Range:          valueRange(spec.Data),
			ValueFormatter: compactFormatter,
		},
	}
	if err := graph.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render bar chart %q: %w", spec.Title, err)
	}
	return nil
}

func renderPie(spec analysis.ChartSpec, format Format, w io.Writer) error {
	var values []chart.Value
	for _, p := range spec.Data {
		if v := pointValue(p); v > 0 {
			values = append(values, chart.Value{Label: pointLabel(p), Value: v})
		}
	}
	if len(values) == 0 {
		return ErrNoData
	}
	graph := chart.PieChart{
		Title:      spec.Title,
		Background: background(),
		Width:      height,
		Height:     height,
		Values:     values,
	}
	if err := graph.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render pie chart %q: %w", spec.Title, err)
	}
	return nil
}

func renderLine(spec analysis.ChartSpec, format Format, w io.Writer) error {
	xs := make([]time.Time, 0, len(spec.Data))
	ys := make([]float64, 0, len(spec.Data))
	for _, p := range spec.Data {
		if p.TS == 0 {
			// Category data shown as a line.
			return renderArea(spec, format, w)
		}
		xs = append(xs, time.UnixMilli(p.TS).UTC())
		ys = append(ys, pointValue(p))
	}
	graph := chart.Chart{
		Title:      spec.Title,
		Background: background(),
		Width:      minWidth,
		Height:     height,
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Range: valueRange(spec.Data), ValueFormatter: compactFormatter},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: strokeColor, StrokeWidth: 2},
			},
		},
	}
	if err := graph.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render line chart %q: %w", spec.Title, err)
	}
	return nil
}

// renderArea plots values over the category index with a filled area, labeling
// each tick with its category.
func renderArea(spec analysis.ChartSpec, format Format, w io.Writer) error {
	xs := make([]float64, len(spec.Data))
	ys := make([]float64, len(spec.Data))
	ticks := make([]chart.Tick, len(spec.Data))
	for i, p := range spec.Data {
		xs[i] = float64(i)
		ys[i] = pointValue(p)
		ticks[i] = chart.Tick{Value: float64(i), Label: pointLabel(p)}
	}
	fill := chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: strokeColor,
			StrokeWidth: 2,
			FillColor:   strokeColor.WithAlpha(100),
		},
	}
	graph := chart.Chart{
		Title:      spec.Title,
		Background: background(),
		Width:      minWidth,
		Height:     height,
		XAxis:      chart.XAxis{Ticks: ticks},
		YAxis:      chart.YAxis{Range: valueRange(spec.Data), ValueFormatter: compactFormatter},
		Series:     []chart.Series{fill},
	}
	if err := graph.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render area chart %q: %w", spec.Title, err)
	}
	return nil
}

func compactFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	switch a := math.Abs(f); {
	case a >= 1e9:
		return fmt.Sprintf("%.1fB", f/1e9)
	case a >= 1e6:
		return fmt.Sprintf("%.1fM", f/1e6)
	case a >= 1e4:
		return fmt.Sprintf("%.1fK", f/1e3)
	case a == math.Trunc(a):
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.2f", f)
}
