package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// NoLocalAnswer is returned when a question matches none of the local intents.
const NoLocalAnswer = "I can only answer from aggregates computed over the full dataset. " +
	"Please ask about totals, averages, top categories, or trends that exist in the current fields."

var (
	countQuestionRe   = regexp.MustCompile(`\b(rows?|records?|count|how many entries)\b`)
	topQuestionRe     = regexp.MustCompile(`\btop\b|\bmost\s+(sold|popular|common|frequent)\b`)
	sumQuestionRe     = regexp.MustCompile(`\b(sum|total)\b`)
	averageQuestionRe = regexp.MustCompile(`\b(average|avg|mean)\b`)
)

// AnswerLocally answers a small set of question shapes from the bundle alone:
// row counts, the most frequent category, and the sum or average of the most
// complete numeric column. Top answers are frequency based. A column named in the
// question is preferred over the default pick.
func AnswerLocally(question string, stats *PreStats) string {
	if stats == nil {
		return NoLocalAnswer
	}
	q := normalizeName(question)

	if countQuestionRe.MatchString(q) {
		return fmt.Sprintf("Total rows: %d.", stats.RowCount)
	}
	if topQuestionRe.MatchString(q) {
		if s, ok := pickColumn(stats.ColumnSummaries, q, isCategoryWithTop, topCount); ok {
			return fmt.Sprintf("Top %s: %s (%d).", s.Name, s.Top[0].Value, s.Top[0].Count)
		}
	}
	if sumQuestionRe.MatchString(q) {
		if s, ok := pickColumn(stats.ColumnSummaries, q, isNumber, numberCount); ok {
			return fmt.Sprintf("Sum of %s: %s.", s.Name, round(s.Sum, 2))
		}
	}
	if averageQuestionRe.MatchString(q) {
		if s, ok := pickColumn(stats.ColumnSummaries, q, isNumber, numberCount); ok {
			return fmt.Sprintf("Average of %s: %s (over %d values).", s.Name, round(s.Mean, 2), s.Count)
		}
	}
	return NoLocalAnswer
}

func isCategoryWithTop(s ColumnSummary) bool {
	return s.Type.Categorical() && s.CategoryStats != nil && len(s.Top) > 0
}

func isNumber(s ColumnSummary) bool { return s.Type == TypeNumber && s.NumberStats != nil }

func topCount(s ColumnSummary) int { return s.Top[0].Count }

func numberCount(s ColumnSummary) int { return s.Count }

// pickColumn returns the eligible column mentioned in q, else the eligible column
// with the highest score. Ties go to the earlier column.
func pickColumn(sums Summaries, q string, eligible func(ColumnSummary) bool, score func(ColumnSummary) int) (ColumnSummary, bool) {
	var best ColumnSummary
	found := false
	for _, s := range sums {
		if !eligible(s) {
			continue
		}
		if mentions(q, normalizeName(s.Name)) {
			return s, true
		}
		if !found || score(s) > score(best) {
			best, found = s, true
		}
	}
	return best, found
}

// mentions reports whether name occurs in q as a whole word, so "id" does not
// match inside "did".
func mentions(q, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	re, err := regexp.Compile(`(^|[^\pL\pN_])` + regexp.QuoteMeta(name) + `($|[^\pL\pN_])`)
	if err != nil {
		return false
	}
	return re.MatchString(q)
}
