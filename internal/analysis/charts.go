package analysis

import (
	"errors"
	"sort"
	"time"

	"github.com/AishaAlajmi/AutoDash/internal/dataset"
)

// ChartType is one of the fixed chart archetypes.
type ChartType string

const (
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
	ChartPie      ChartType = "pie"
	ChartArea     ChartType = "area"
	ChartComposed ChartType = "composed"
	ChartHBar     ChartType = "hbar"
)

// ErrUnknownChartType is returned when switching a chart to a type outside the fixed set.
var ErrUnknownChartType = errors.New("unknown chart type")

// Valid reports whether t is a known archetype.
func (t ChartType) Valid() bool {
	switch t {
	case ChartBar, ChartLine, ChartPie, ChartArea, ChartComposed, ChartHBar:
		return true
	}
	return false
}

// Point is one pre-aggregated chart record. Category charts use Name; the time
// series uses Date and TS (Unix milliseconds at UTC midnight).
type Point struct {
	Name  string  `json:"name,omitempty"`
	Date  string  `json:"date,omitempty"`
	TS    int64   `json:"ts,omitempty"`
	Value float64 `json:"value"`
	Count int     `json:"count,omitempty"`
}

// ChartSpec is a chart with its data fully aggregated.
type ChartSpec struct {
	Type        ChartType `json:"type"`
	Title       string    `json:"title"`
	DataKey     string    `json:"dataKey"`
	NameKey     string    `json:"nameKey"`
	Data        []Point   `json:"data"`
	CurrentType ChartType `json:"currentType"`
}

// WithType returns a copy displayed as t. The data is shared, never re-aggregated.
func (c ChartSpec) WithType(t ChartType) (ChartSpec, error) {
	if !t.Valid() {
		return c, ErrUnknownChartType
	}
	c.CurrentType = t
	return c, nil
}

// BuildCharts emits, in order, the top-category bar, the daily line, the category pie,
// the category-sum area and the value-and-count composed chart. Charts whose primary
// columns are missing or whose data would be empty are skipped.
func BuildCharts(t *dataset.Table, sums Summaries, opt Options) []ChartSpec {
	opt = opt.withDefaults()
	sel := Select(sums)
	charts := []ChartSpec{}
	add := func(typ ChartType, title, nameKey string, data []Point) {
		if len(data) == 0 {
			return
		}
		charts = append(charts, ChartSpec{
			Type: typ, Title: title, DataKey: "value", NameKey: nameKey, Data: data, CurrentType: typ,
		})
	}

	var cat ColumnSummary
	if sel.CatCol != "" {
		cat, _ = sums.Lookup(sel.CatCol)
		add(ChartBar, "Top "+sel.CatCol, "name", topPoints(cat.Top, opt.BarCap))
	}
	if sel.DateCol != "" {
		d, _ := sums.Lookup(sel.DateCol)
		title, data := "Entries over time", dailyCounts(d.Timeline)
		if sel.NumCol != "" {
			if daily := dailySums(t.Rows, sel.DateCol, sel.NumCol); len(daily) > 0 {
				title, data = "Daily "+sel.NumCol, daily
			}
		}
		add(ChartLine, title, "date", data)
	}
	if sel.CatCol != "" {
		add(ChartPie, "Distribution of "+sel.CatCol, "name", topPoints(cat.Top, opt.PieCap))
	}
	if sel.CatCol != "" && sel.NumCol != "" {
		add(ChartArea, sel.NumCol+" by "+sel.CatCol, "name", categorySums(t.Rows, sel.CatCol, sel.NumCol, opt.SeriesCap))
	}
	if sel.CatCol != "" {
		title := "Count by " + sel.CatCol
		if sel.NumCol != "" {
			title = sel.NumCol + " & Count by " + sel.CatCol
		}
		add(ChartComposed, title, "name", composedPoints(t.Rows, sel.CatCol, sel.NumCol, opt.SeriesCap))
	}
	return charts
}

func topPoints(top []ValueCount, limit int) []Point {
	if len(top) > limit {
		top = top[:limit]
	}
	out := make([]Point, len(top))
	for i, vc := range top {
		out[i] = Point{Name: vc.Value, Value: float64(vc.Count)}
	}
	return out
}

func dayPoint(day string, v float64) Point {
	p := Point{Date: day, Value: v}
	if t, err := time.Parse(dayKeyLayout, day); err == nil {
		p.TS = t.UnixMilli()
	}
	return p
}

func dailyCounts(timeline []DayCount) []Point {
	out := make([]Point, len(timeline))
	for i, d := range timeline {
		out[i] = dayPoint(d.Day, float64(d.Count))
	}
	return out
}

// dailySums re-scans rows to total numCol per day of dateCol. Rows missing either value are skipped.
func dailySums(rows []dataset.Row, dateCol, numCol string) []Point {
	byDay := map[string]float64{}
	for _, r := range rows {
		d, ok := toDate(r.Get(dateCol))
		if !ok {
			continue
		}
		n, ok := toNumber(r.Get(numCol))
		if !ok {
			continue
		}
		byDay[dayKey(d)] += n
	}
	out := make([]Point, 0, len(byDay))
	for day, v := range byDay {
		out = append(out, dayPoint(day, v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// categorySums totals numCol per label of catCol, largest first.
func categorySums(rows []dataset.Row, catCol, numCol string, limit int) []Point {
	var order []string
	sums := map[string]float64{}
	for _, r := range rows {
		c := r.Get(catCol)
		if c.IsNull() {
			continue
		}
		n, ok := toNumber(r.Get(numCol))
		if !ok {
			continue
		}
		k := c.String()
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += n
	}
	out := make([]Point, len(order))
	for i, k := range order {
		out[i] = Point{Name: k, Value: sums[k]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// composedPoints counts rows per label of catCol and, when numCol is set, totals it too.
// Points sort by total, or by count where the total is zero.
func composedPoints(rows []dataset.Row, catCol, numCol string, limit int) []Point {
	var order []string
	agg := map[string]*Point{}
	for _, r := range rows {
		c := r.Get(catCol)
		if c.IsNull() {
			continue
		}
		k := c.String()
		p, ok := agg[k]
		if !ok {
			p = &Point{Name: k}
			agg[k] = p
			order = append(order, k)
		}
		p.Count++
		if numCol != "" {
			if n, ok := toNumber(r.Get(numCol)); ok {
				p.Value += n
			}
		}
	}
	out := make([]Point, len(order))
	for i, k := range order {
		out[i] = *agg[k]
	}
	key := func(p Point) float64 {
		if p.Value != 0 {
			return p.Value
		}
		return float64(p.Count)
	}
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
