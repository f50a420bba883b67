package core

import "sort"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Overview is the dashboard summary for one session: income, total spent,
// remaining balance and the per-category breakdown.
type Overview struct {
	Income     Money
	Spent      Money
	Balance    Money
	ByCategory []CategoryAmount
}

// Summarize aggregates a session's expenses against its monthly income.
// The breakdown is ordered by descending amount, ties broken by name.
func Summarize(income Money, expenses []Expense) Overview {
	ov := Overview{Income: income}
	byCat := make(map[string]int64)
	for _, e := range expenses {
		ov.Spent.Cents += e.Amount.Cents
		byCat[e.Category] += e.Amount.Cents
	}
	ov.Balance = Money{Cents: income.Cents - ov.Spent.Cents}

	ov.ByCategory = make([]CategoryAmount, 0, len(byCat))
	for name, cents := range byCat {
		ov.ByCategory = append(ov.ByCategory, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(ov.ByCategory, func(i, j int) bool {
		a, b := ov.ByCategory[i], ov.ByCategory[j]
		if a.Amount.Cents != b.Amount.Cents {
			return a.Amount.Cents > b.Amount.Cents
		}
		return a.Name < b.Name
	})
	return ov
}
