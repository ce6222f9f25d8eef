package analysis

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Column-name heuristics. Names are transliterated to ASCII and lower-cased
// before matching, so "Région" hits the "region" hint.

var dateNameRe = regexp.MustCompile(`date|day|time|created|updated|timestamp|period|month|week|year`)

// dateNameBonus nudges the date tally of date-named columns.
const dateNameBonus = 2

type nameBonus struct {
	re    *regexp.Regexp
	bonus float64
}

// numericNameBonuses are tried in order; the first match wins.
var numericNameBonuses = []nameBonus{
	{regexp.MustCompile(`amount|revenue|income|sales|price|cost|expense|spend|payroll|salary|wage|profit|total|value`), 1_000_000},
	{regexp.MustCompile(`qty|quantity|units|count|items|hours|headcount|visits|orders|tickets`), 500_000},
}

var entityHints = []string{
	"employee", "user", "customer", "client", "student", "patient", "vendor", "supplier",
	"account", "department", "team", "project", "product", "service", "course", "clinic",
	"facility", "school", "region", "branch", "category", "type", "channel", "status",
}

const entityBonus = 10_000

var (
	statusNameRe = regexp.MustCompile(`status|state|stage|phase|result|outcome`)
	doneLabelRe  = regexp.MustCompile(`\b(done|closed|complete|completed|delivered|paid|approved|resolved|shipped|posted)\b`)
	openLabelRe  = regexp.MustCompile(`\b(open|pending|in[ _-]?progress|new|draft|unpaid|unshipped|waiting)\b`)
)

// Intent is a coarse guess at what a dataset is about, from its column names.
type Intent string

const (
	IntentHR         Intent = "HR"
	IntentFinance    Intent = "Finance"
	IntentSales      Intent = "Sales"
	IntentOps        Intent = "Ops"
	IntentEducation  Intent = "Education"
	IntentHealthcare Intent = "Healthcare"
	IntentGeneric    Intent = "Generic"
)

// intentRules are tried in order against all column names joined by spaces.
var intentRules = []struct {
	intent Intent
	re     *regexp.Regexp
}{
	{IntentHR, regexp.MustCompile(`employee|payroll|salary|department|position|hire|leave|absence|\bhr\b`)},
	{IntentFinance, regexp.MustCompile(`invoice|expense|account|vendor|supplier|\bap\b|\bar\b|\bgl\b|budget|amount|payment|finance`)},
	{IntentSales, regexp.MustCompile(`order|product|sku|customer|revenue|sales|ship|channel|region`)},
	{IntentOps, regexp.MustCompile(`ticket|case|priority|sla|issue|status|resolution|incident|service`)},
	{IntentEducation, regexp.MustCompile(`student|course|grade|faculty|school|class|attendance`)},
	{IntentHealthcare, regexp.MustCompile(`patient|clinic|diagnosis|treatment|appointment|visit|doctor|hospital`)},
}

func normalizeName(name string) string {
	return strings.ToLower(unidecode.Unidecode(name))
}

func numericNameBonus(name string) float64 {
	n := normalizeName(name)
	for _, h := range numericNameBonuses {
		if h.re.MatchString(n) {
			return h.bonus
		}
	}
	return 0
}

func isEntityName(name string) bool {
	n := normalizeName(name)
	for _, h := range entityHints {
		if strings.Contains(n, h) {
			return true
		}
	}
	return false
}

// ClassifyIntent guesses the dataset domain from its column names.
func ClassifyIntent(columns []string) Intent {
	joined := normalizeName(strings.Join(columns, " "))
	for _, r := range intentRules {
		if r.re.MatchString(joined) {
			return r.intent
		}
	}
	return IntentGeneric
}
