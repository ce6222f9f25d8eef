package analysis

import (
	"sort"
	"time"

	"github.com/AishaAlajmi/AutoDash/internal/dataset"
)

// Summarize computes per-type aggregates for each column in schema. Cells that do
// not parse as the column's type count as nulls. topCap bounds categorical top lists.
func Summarize(t *dataset.Table, schema Schema, topCap int) Summaries {
	out := make(Summaries, 0, len(schema))
	for _, info := range schema {
		var s ColumnSummary
		switch info.Type {
		case TypeNumber:
			s = summarizeNumber(t.Rows, info.Name)
		case TypeDate:
			s = summarizeDate(t.Rows, info.Name)
		default:
			s = summarizeCategory(t.Rows, info.Name, topCap)
		}
		s.Name = info.Name
		s.Type = info.Type
		out = append(out, s)
	}
	return out
}

func summarizeNumber(rows []dataset.Row, col string) ColumnSummary {
	st := &NumberStats{}
	s := ColumnSummary{NumberStats: st}
	for _, r := range rows {
		v, ok := toNumber(r.Get(col))
		if !ok {
			s.Nulls++
			continue
		}
		if st.Count == 0 || v < st.Min {
			st.Min = v
		}
		if st.Count == 0 || v > st.Max {
			st.Max = v
		}
		st.Count++
		st.Sum += v
	}
	if st.Count > 0 {
		st.Mean = st.Sum / float64(st.Count)
	}
	return s
}

// frequencies counts labels keeping first-seen order for tie-breaks.
type frequencies struct {
	order []string
	count map[string]int
}

func newFrequencies() *frequencies { return &frequencies{count: map[string]int{}} }

func (f *frequencies) add(label string, n int) {
	if _, ok := f.count[label]; !ok {
		f.order = append(f.order, label)
	}
	f.count[label] += n
}

// sorted returns labels by count descending, first-seen first on ties.
func (f *frequencies) sorted() []ValueCount {
	out := make([]ValueCount, len(f.order))
	for i, k := range f.order {
		out[i] = ValueCount{Value: k, Count: f.count[k]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func summarizeCategory(rows []dataset.Row, col string, topCap int) ColumnSummary {
	freq := newFrequencies()
	s := ColumnSummary{}
	for _, r := range rows {
		c := r.Get(col)
		if c.IsNull() {
			s.Nulls++
			continue
		}
		freq.add(c.String(), 1)
	}
	all := freq.sorted()
	top := all
	if topCap > 0 && len(top) > topCap {
		top = top[:topCap]
	}
	s.CategoryStats = &CategoryStats{Distinct: len(all), Top: top}
	return s
}

func summarizeDate(rows []dataset.Row, col string) ColumnSummary {
	st := &DateStats{Timeline: []DayCount{}}
	s := ColumnSummary{DateStats: st}
	byDay := map[string]int{}
	var minT, maxT time.Time
	seen := false
	for _, r := range rows {
		d, ok := toDate(r.Get(col))
		if !ok {
			s.Nulls++
			continue
		}
		byDay[dayKey(d)]++
		if !seen || d.Before(minT) {
			minT = d
		}
		if !seen || d.After(maxT) {
			maxT = d
		}
		seen = true
	}
	for day, n := range byDay {
		st.Timeline = append(st.Timeline, DayCount{Day: day, Count: n})
	}
	sort.Slice(st.Timeline, func(i, j int) bool { return st.Timeline[i].Day < st.Timeline[j].Day })
	if seen {
		st.MinDate, st.MaxDate = &minT, &maxT
	}
	return s
}
