package analysis

import (
	"bytes"
	"encoding/json"
	"time"
)

// ColumnType is the semantic type inferred for a column.
type ColumnType string

const (
	TypeNumber  ColumnType = "number"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
	TypeString  ColumnType = "string"
)

// Categorical reports whether summaries of this type are frequency tables.
func (t ColumnType) Categorical() bool { return t == TypeString || t == TypeBoolean }

// ColumnTypeInfo is the detector's verdict for one column.
type ColumnTypeInfo struct {
	Name         string     `json:"-"`
	Type         ColumnType `json:"type"`
	NonNullCount int        `json:"nonNullCount"`
}

// Schema lists column types in table column order.
type Schema []ColumnTypeInfo

// Lookup returns the type info for a column name.
func (s Schema) Lookup(name string) (ColumnTypeInfo, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnTypeInfo{}, false
}

// MarshalJSON writes the schema as an object keyed by column name, in column order.
func (s Schema) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(s), func(i int) (string, any) { return s[i].Name, s[i] })
}

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DayCount is one bucket of a date timeline.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// NumberStats accumulate only over parseable, non-null values.
type NumberStats struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// CategoryStats is a capped frequency table; Distinct counts every value seen.
type CategoryStats struct {
	Distinct int          `json:"distinct"`
	Top      []ValueCount `json:"top"`
}

// DateStats is a day-bucketed timeline sorted ascending.
type DateStats struct {
	Timeline []DayCount `json:"timeline"`
	MinDate  *time.Time `json:"minDate"`
	MaxDate  *time.Time `json:"maxDate"`
}

// ColumnSummary is a tagged union keyed by Type. Exactly one of the embedded
// stats pointers is set: NumberStats for numbers, CategoryStats for strings and
// booleans, DateStats for dates.
type ColumnSummary struct {
	Name  string     `json:"-"`
	Type  ColumnType `json:"type"`
	Nulls int        `json:"nulls"`
	*NumberStats
	*CategoryStats
	*DateStats
}

// Summaries lists column summaries in table column order.
type Summaries []ColumnSummary

// Lookup returns the summary for a column name.
func (s Summaries) Lookup(name string) (ColumnSummary, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSummary{}, false
}

// MarshalJSON writes the summaries as an object keyed by column name, in column order.
func (s Summaries) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(s), func(i int) (string, any) { return s[i].Name, s[i] })
}

func marshalOrdered(n int, item func(int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, v := item(i)
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// KeyMetric is one headline card.
type KeyMetric struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// PreStats is the aggregate bundle handed to every downstream consumer.
// It holds no references back to the source rows.
type PreStats struct {
	RowCount        int         `json:"rowCount"`
	ColumnNames     []string    `json:"columnNames"`
	ColumnTypes     Schema      `json:"columnTypes"`
	ColumnSummaries Summaries   `json:"columnSummaries"`
	Charts          []ChartSpec `json:"charts"`
	KeyMetrics      []KeyMetric `json:"keyMetrics"`
	Intent          Intent      `json:"intent"`
}
