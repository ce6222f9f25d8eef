package analysis

// Selection names the primary columns that drive charts and metrics.
// An empty name means no column of that kind exists.
type Selection struct {
	DateCol string `json:"dateCol,omitempty"`
	NumCol  string `json:"numCol,omitempty"`
	CatCol  string `json:"catCol,omitempty"`
}

// dateNameTieBreak favors a date-named column between columns covering equally many days.
const dateNameTieBreak = 0.5

// Select picks the primary date, numeric and categorical columns. The date column
// covers the most days, preferring date-like names on ties. The numeric column
// maximizes count plus a money or quantity name bonus. The categorical column
// maximizes distinct values plus an entity name bonus. Remaining ties go to the
// earlier column.
func Select(sums Summaries) Selection {
	var sel Selection
	bestDate, bestNum, bestCat := -1.0, -1.0, -1.0
	for _, s := range sums {
		switch {
		case s.Type == TypeDate && s.DateStats != nil:
			score := float64(len(s.Timeline))
			if dateNameRe.MatchString(normalizeName(s.Name)) {
				score += dateNameTieBreak
			}
			if score > bestDate {
				bestDate, sel.DateCol = score, s.Name
			}
		case s.Type == TypeNumber && s.NumberStats != nil:
			if score := float64(s.Count) + numericNameBonus(s.Name); score > bestNum {
				bestNum, sel.NumCol = score, s.Name
			}
		case s.Type.Categorical() && s.CategoryStats != nil:
			score := float64(s.Distinct)
			if isEntityName(s.Name) {
				score += entityBonus
			}
			if score > bestCat {
				bestCat, sel.CatCol = score, s.Name
			}
		}
	}
	return sel
}

// entityColumn returns the entity-named categorical column with the most distinct values.
func entityColumn(sums Summaries) (ColumnSummary, bool) {
	var best ColumnSummary
	found := false
	for _, s := range sums {
		if !s.Type.Categorical() || s.CategoryStats == nil || !isEntityName(s.Name) {
			continue
		}
		if !found || s.Distinct > best.Distinct {
			best, found = s, true
		}
	}
	return best, found
}
