package dataset

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind tags the value held by a Cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	}
	return "null"
}

// Cell is one raw spreadsheet value. The zero value is Null.
type Cell struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
}

func Null() Cell { return Cell{} }
func Number(f float64) Cell { return Cell{kind: KindNumber, num: f} }
func String(s string) Cell { return Cell{kind: KindString, str: s} }
func Bool(b bool) Cell { return Cell{kind: KindBool, b: b} }
func Date(t time.Time) Cell { return Cell{kind: KindDate, t: t.UTC()} }
func (c Cell) Kind() Kind { return c.kind }
func (c Cell) Num() float64 { return c.num }
func (c Cell) Str() string { return c.str }
func (c Cell) Boolean() bool { return c.b }
func (c Cell) Time() time.Time { return c.t }
func (c Cell) IsNumber() bool { return c.kind == KindNumber }
func (c Cell) IsBool() bool { return c.kind == KindBool }
func (c Cell) IsDate() bool { return c.kind == KindDate }
func (c Cell) IsText() bool { return c.kind == KindString }

// IsNull reports whether the cell is missing: Null, or a string that is blank after trimming.
func (c Cell) IsNull() bool {
	switch c.kind {
	case KindNull:
		return true
	case KindString:
		return strings.TrimSpace(c.str) == ""
	}
	return false
}

// String renders the cell as a category label.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindString:
		return c.str
	case KindBool:
		if c.b {
			return "true"
		}
		return "false"
	case KindDate:
		return c.t.Format(time.RFC3339)
	}
	return ""
}

// MarshalJSON writes the cell as its natural JSON scalar.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindNumber:
		return json.Marshal(c.num)
	case KindString:
		return json.Marshal(c.str)
	case KindBool:
		return json.Marshal(c.b)
	case KindDate:
		return json.Marshal(c.t)
	}
	return []byte("null"), nil
}

// UnmarshalJSON maps JSON scalars onto cells. Objects and arrays are kept as their raw text.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*c = Null()
	case float64:
		*c = Number(x)
	case string:
		*c = String(x)
	case bool:
		*c = Bool(x)
	default:
		*c = String(string(b))
	}
	return nil
}
