package analysis

import "github.com/AishaAlajmi/AutoDash/internal/dataset"

// Options bounds the sizes of the computed aggregates. Zero fields take defaults.
type Options struct {
	// TopCap limits categorical top lists in column summaries.
	TopCap int
	// BarCap and PieCap limit the category charts.
	BarCap int
	PieCap int
	// SeriesCap limits the area and composed charts.
	SeriesCap int
	// MaxMetrics limits the key metric list.
	MaxMetrics int
	// TrendWindowDays is the length of each trend window.
	TrendWindowDays int
}

// DefaultOptions returns the standard aggregate sizes.
func DefaultOptions() Options {
	return Options{
		TopCap:          25,
		BarCap:          15,
		PieCap:          12,
		SeriesCap:       20,
		MaxMetrics:      6,
		TrendWindowDays: 30,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TopCap <= 0 {
		o.TopCap = d.TopCap
	}
	if o.BarCap <= 0 {
		o.BarCap = d.BarCap
	}
	if o.PieCap <= 0 {
		o.PieCap = d.PieCap
	}
	if o.SeriesCap <= 0 {
		o.SeriesCap = d.SeriesCap
	}
	if o.MaxMetrics <= 0 {
		o.MaxMetrics = d.MaxMetrics
	}
	if o.TrendWindowDays <= 0 {
		o.TrendWindowDays = d.TrendWindowDays
	}
	return o
}

// Compute runs detection, summarization, chart and metric building over the full table.
// A nil or empty table yields zero counts and no charts or metrics.
func Compute(t *dataset.Table, opt Options) *PreStats {
	opt = opt.withDefaults()
	if t == nil {
		t = &dataset.Table{}
	}
	schema := Detect(t)
	sums := Summarize(t, schema, opt.TopCap)
	cols := append([]string{}, t.Columns...)
	return &PreStats{
		RowCount:        t.Len(),
		ColumnNames:     cols,
		ColumnTypes:     schema,
		ColumnSummaries: sums,
		Charts:          BuildCharts(t, sums, opt),
		KeyMetrics:      BuildKeyMetrics(t, sums, opt),
		Intent:          ClassifyIntent(cols),
	}
}
