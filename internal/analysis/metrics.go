package analysis

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AishaAlajmi/AutoDash/internal/dataset"
)

// BuildKeyMetrics assembles headline cards in a fixed order: record and column counts,
// time coverage and trailing-window trend, distinct entities, numeric total and average,
// then a completion rate. The list is cut to opt.MaxMetrics. An empty table has no metrics.
func BuildKeyMetrics(t *dataset.Table, sums Summaries, opt Options) []KeyMetric {
	opt = opt.withDefaults()
	metrics := []KeyMetric{}
	if t.Len() == 0 {
		return metrics
	}
	sel := Select(sums)
	metrics = append(metrics,
		KeyMetric{Title: "Total Records", Value: strconv.Itoa(t.Len()), Description: "Total number of entries in the dataset."},
		KeyMetric{Title: "Columns", Value: strconv.Itoa(len(t.Columns)), Description: "Number of fields."},
	)

	if d, ok := sums.Lookup(sel.DateCol); ok && d.DateStats != nil && d.MinDate != nil && d.MaxDate != nil {
		metrics = append(metrics, KeyMetric{
			Title:       "Time Coverage",
			Value:       dayKey(*d.MinDate) + " → " + dayKey(*d.MaxDate),
			Description: "From first to last " + d.Name + ".",
		})
		metrics = append(metrics, trendMetric(d.Timeline, *d.MaxDate, opt.TrendWindowDays))
	}

	if e, ok := entityColumn(sums); ok {
		metrics = append(metrics, KeyMetric{
			Title:       "Distinct " + e.Name,
			Value:       strconv.Itoa(e.Distinct),
			Description: "Unique " + e.Name + " values.",
		})
	}

	if n, ok := sums.Lookup(sel.NumCol); ok && n.NumberStats != nil {
		metrics = append(metrics,
			KeyMetric{Title: "Total " + n.Name, Value: round(n.Sum, 2), Description: "Sum across all records."},
			KeyMetric{Title: "Avg " + n.Name, Value: round(n.Mean, 2), Description: "Average per record."},
		)
	}

	if m, ok := completionMetric(sums); ok {
		metrics = append(metrics, m)
	}

	if len(metrics) > opt.MaxMetrics {
		metrics = metrics[:opt.MaxMetrics]
	}
	return metrics
}

// trendMetric compares the window ending at now with the window before it. The delta
// is omitted when the earlier window is empty.
func trendMetric(timeline []DayCount, now time.Time, days int) KeyMetric {
	window := time.Duration(days) * 24 * time.Hour
	start1 := now.Add(-window)
	start2 := now.Add(-2 * window)
	var current, previous int
	for _, d := range timeline {
		ts, err := time.Parse(dayKeyLayout, d.Day)
		if err != nil {
			continue
		}
		switch {
		case ts.After(start1) && !ts.After(now):
			current += d.Count
		case ts.After(start2) && !ts.After(start1):
			previous += d.Count
		}
	}
	value := strconv.Itoa(current)
	if previous > 0 {
		delta := decimal.NewFromInt(int64(current - previous)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(previous))).
			Round(1)
		sign := "▲"
		if delta.IsNegative() {
			sign = "▼"
		}
		value = fmt.Sprintf("%d (%s%s%%)", current, sign, delta.Abs().String())
	}
	return KeyMetric{
		Title:       fmt.Sprintf("Last %d days", days),
		Value:       value,
		Description: fmt.Sprintf("vs previous %d days (%d).", days, previous),
	}
}

// completionMetric reads the first status-like categorical column whose top labels
// classify as done or open. Each label counts once, done taking precedence.
func completionMetric(sums Summaries) (KeyMetric, bool) {
	for _, s := range sums {
		if !s.Type.Categorical() || s.CategoryStats == nil || !statusNameRe.MatchString(normalizeName(s.Name)) {
			continue
		}
		var done, open int
		for _, vc := range s.Top {
			label := normalizeName(vc.Value)
			switch {
			case doneLabelRe.MatchString(label):
				done += vc.Count
			case openLabelRe.MatchString(label):
				open += vc.Count
			}
		}
		total := done + open
		if total == 0 {
			continue
		}
		rate := decimal.NewFromInt(int64(done)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			Round(1)
		return KeyMetric{
			Title:       "Completion (" + s.Name + ")",
			Value:       rate.String() + "%",
			Description: fmt.Sprintf("%d done of %d; %d open.", done, total, open),
		}, true
	}
	return KeyMetric{}, false
}

// round formats v with at most places decimals and no trailing zeros.
func round(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(places).String()
}
