package finance

import (
	"fmt"
	"sort"

	"github.com/psicogestion/practice-api/internal/dates"
)

// Totals aggregates the whole ledger. Balance is income minus expenses.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// MonthPoint is one month in the income/expense chart.
type MonthPoint struct {
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

var spanishMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// ComputeTotals sums the ledger. Every transaction counts regardless of its
// date, including ones whose date cannot be parsed.
func ComputeTotals(list []Transaction) Totals {
	var t Totals
	for _, tx := range list {
		switch tx.Type {
		case TypeIncome:
			t.Income += tx.Amount
		case TypeExpense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// MonthlySeries buckets the ledger by calendar month, ordered chronologically.
// Transactions with unparseable dates are left out of the chart.
func MonthlySeries(list []Transaction) []MonthPoint {
	type key struct {
		year  int
		month int
	}
	byMonth := make(map[key]*MonthPoint)

	for _, tx := range list {
		t, err := dates.Parse(tx.Date)
		if err != nil {
			continue
		}
		k := key{t.Year(), int(t.Month())}
		point, ok := byMonth[k]
		if !ok {
			point = &MonthPoint{Label: fmt.Sprintf("%s %d", spanishMonths[k.month-1], k.year)}
			byMonth[k] = point
		}
		switch tx.Type {
		case TypeIncome:
			point.Income += tx.Amount
		case TypeExpense:
			point.Expense += tx.Amount
		}
	}

	keys := make([]key, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].year != keys[b].year {
			return keys[a].year < keys[b].year
		}
		return keys[a].month < keys[b].month
	})

	out := make([]MonthPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byMonth[k])
	}
	return out
}
