package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AishaAlajmi/AutoDash/internal/dataset"
)

func selectFor(tbl *dataset.Table) Selection {
	return Select(Summarize(tbl, Detect(tbl), 25))
}

func TestSelectPrefersDateNamedColumnOnTie(t *testing.T) {
	tbl := newTestTable([]string{"notes", "hire_date"},
		[]dataset.Cell{str("2023-05-01"), str("2023-05-01")},
		[]dataset.Cell{str("2023-06-01"), str("2023-06-01")},
		[]dataset.Cell{str("2023-07-01"), str("2023-07-01")},
	)
	assert.Equal(t, "hire_date", selectFor(tbl).DateCol)
}

func TestSelectLongestTimeline(t *testing.T) {
	tbl := newTestTable([]string{"updated_at", "event"},
		[]dataset.Cell{str("2023-05-01"), str("2023-05-01")},
		[]dataset.Cell{str("2023-05-01"), str("2023-05-02")},
		[]dataset.Cell{str("2023-05-01"), str("2023-05-03")},
	)
	assert.Equal(t, "event", selectFor(tbl).DateCol)
}

func TestSelectMoneyOverIdentifier(t *testing.T) {
	tbl := newTestTable([]string{"id", "revenue", "units"},
		[]dataset.Cell{num(1), num(100), num(3)},
		[]dataset.Cell{num(2), num(250), num(4)},
		[]dataset.Cell{num(3), num(75), num(1)},
	)
	assert.Equal(t, "revenue", selectFor(tbl).NumCol)

	noMoney := newTestTable([]string{"id", "units"},
		[]dataset.Cell{num(1), num(3)},
		[]dataset.Cell{num(2), null()},
	)
	assert.Equal(t, "units", selectFor(noMoney).NumCol)
}

func TestSelectEntityHintWithTransliteration(t *testing.T) {
	tbl := newTestTable([]string{"comment", "Région"},
		[]dataset.Cell{str("a"), str("North")},
		[]dataset.Cell{str("b"), str("North")},
		[]dataset.Cell{str("c"), str("South")},
		[]dataset.Cell{str("d"), str("South")},
	)
	assert.Equal(t, "Région", selectFor(tbl).CatCol)
}

func TestSelectTiesGoToFirstColumn(t *testing.T) {
	tbl := newTestTable([]string{"left", "right"},
		[]dataset.Cell{str("a"), str("x")},
		[]dataset.Cell{str("b"), str("y")},
	)
	assert.Equal(t, "left", selectFor(tbl).CatCol)
}

func TestSelectToleratesMissingKinds(t *testing.T) {
	assert.Equal(t, Selection{}, Select(nil))
	tbl := newTestTable([]string{"only"}, []dataset.Cell{num(5)})
	assert.Equal(t, Selection{NumCol: "only"}, selectFor(tbl))
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		cols []string
		want Intent
	}{
		{[]string{"Employee", "Salary"}, IntentHR},
		{[]string{"invoice_no", "due"}, IntentFinance},
		{[]string{"Region", "Sales"}, IntentSales},
		{[]string{"ticket", "priority"}, IntentOps},
		{[]string{"student", "grade"}, IntentEducation},
		{[]string{"patient", "diagnosis"}, IntentHealthcare},
		{[]string{"foo", "bar"}, IntentGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyIntent(tt.cols), "%v", tt.cols)
	}
}
