package analysis

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// markdownTopValues bounds how many top labels the schema table lists per column.
const markdownTopValues = 5

// Markdown renders a compact report suitable for prompts or standalone docs.
func (p *PreStats) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Rows: %d\n", p.RowCount))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(p.ColumnNames)))
	b.WriteString(fmt.Sprintf("Intent: %s\n\n", p.Intent))

	b.WriteString("[SCHEMA]\n")
	schema := table.NewWriter()
	schema.AppendHeader(table.Row{"Column", "Type", "Non-null", "Nulls", "Details"})
	for _, s := range p.ColumnSummaries {
		nonNull := 0
		if info, ok := p.ColumnTypes.Lookup(s.Name); ok {
			nonNull = info.NonNullCount
		}
		schema.AppendRow(table.Row{safeVal(s.Name), string(s.Type), nonNull, s.Nulls, summaryDetails(s)})
	}
	b.WriteString(schema.RenderMarkdown())
	b.WriteString("\n")

	if len(p.KeyMetrics) > 0 {
		b.WriteString("\n[KEY METRICS]\n")
		km := table.NewWriter()
		km.AppendHeader(table.Row{"Metric", "Value", "Description"})
		for _, m := range p.KeyMetrics {
			km.AppendRow(table.Row{safeVal(m.Title), safeVal(m.Value), safeVal(m.Description)})
		}
		b.WriteString(km.RenderMarkdown())
		b.WriteString("\n")
	}

	if len(p.Charts) > 0 {
		b.WriteString("\n[CHARTS]\n")
		for _, c := range p.Charts {
			b.WriteString(fmt.Sprintf("- %s: %s (%d points)\n", c.Type, safeVal(c.Title), len(c.Data)))
		}
	}
	return b.String()
}

func summaryDetails(s ColumnSummary) string {
	switch {
	case s.NumberStats != nil:
		return fmt.Sprintf("sum %s, mean %s, min %s, max %s",
			round(s.Sum, 2), round(s.Mean, 2), round(s.Min, 2), round(s.Max, 2))
	case s.CategoryStats != nil:
		var parts []string
		for i, vc := range s.Top {
			if i == markdownTopValues {
				break
			}
			parts = append(parts, fmt.Sprintf("%s(%d)", safeVal(vc.Value), vc.Count))
		}
		if len(parts) == 0 {
			return fmt.Sprintf("distinct %d", s.Distinct)
		}
		return fmt.Sprintf("distinct %d; top: %s", s.Distinct, strings.Join(parts, ", "))
	case s.DateStats != nil && s.MinDate != nil && s.MaxDate != nil:
		return fmt.Sprintf("%s → %s over %d days", dayKey(*s.MinDate), dayKey(*s.MaxDate), len(s.Timeline))
	}
	return ""
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
