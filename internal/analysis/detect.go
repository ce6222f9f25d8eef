package analysis

import "github.com/AishaAlajmi/AutoDash/internal/dataset"

// Detect classifies every column of t by scanning all rows. Each non-null cell is
// tallied as date, boolean, number or string, tested in that order so spreadsheet
// serials and Unix timestamps count as dates. Date-named columns get a small bonus
// once they hold at least one date. Ties resolve date > number > boolean > string.
// A column with no non-null cells is a string column.
func Detect(t *dataset.Table) Schema {
	out := make(Schema, 0, len(t.Columns))
	for _, col := range t.Columns {
		var dates, nums, bools, strs, nonNull int
		for _, r := range t.Rows {
			c := r.Get(col)
			if c.IsNull() {
				continue
			}
			nonNull++
			if _, ok := toDate(c); ok {
				dates++
				continue
			}
			if c.IsBool() {
				bools++
				continue
			}
			if _, ok := toNumber(c); ok {
				nums++
				continue
			}
			strs++
		}
		if dates > 0 && dateNameRe.MatchString(normalizeName(col)) {
			dates += dateNameBonus
		}

		info := ColumnTypeInfo{Name: col, Type: TypeString, NonNullCount: nonNull}
		if nonNull > 0 {
			best := -1
			for _, cand := range []struct {
				t ColumnType
				n int
			}{{TypeDate, dates}, {TypeNumber, nums}, {TypeBoolean, bools}, {TypeString, strs}} {
				if cand.n > best {
					best = cand.n
					info.Type = cand.t
				}
			}
		}
		out = append(out, info)
	}
	return out
}
