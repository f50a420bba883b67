package core

import "testing"

func TestSummarize(t *testing.T) {
	income := Money{Cents: 500000}
	expenses := []Expense{
		{Name: "Café", Amount: Money{Cents: 1250}, Category: "Alimentação"},
		{Name: "Aluguel", Amount: Money{Cents: 150000}, Category: "Moradia"},
		{Name: "Mercado", Amount: Money{Cents: 20000}, Category: "Alimentação"},
	}

	ov := Summarize(income, expenses)

	if ov.Spent.Cents != 171250 {
		t.Fatalf("expected spent 171250, got %d", ov.Spent.Cents)
	}
	if ov.Balance.Cents != 328750 {
		t.Fatalf("expected balance 328750, got %d", ov.Balance.Cents)
	}
	if len(ov.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(ov.ByCategory))
	}
	// Ordered by descending amount
	if ov.ByCategory[0].Name != "Moradia" || ov.ByCategory[0].Amount.Cents != 150000 {
		t.Fatalf("unexpected first category: %+v", ov.ByCategory[0])
	}
	if ov.ByCategory[1].Name != "Alimentação" || ov.ByCategory[1].Amount.Cents != 21250 {
		t.Fatalf("unexpected second category: %+v", ov.ByCategory[1])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	ov := Summarize(Money{Cents: 500000}, nil)
	if ov.Spent.Cents != 0 {
		t.Fatalf("expected zero spent, got %d", ov.Spent.Cents)
	}
	if ov.Balance.Cents != 500000 {
		t.Fatalf("expected full balance, got %d", ov.Balance.Cents)
	}
	if len(ov.ByCategory) != 0 {
		t.Fatalf("expected empty breakdown, got %d", len(ov.ByCategory))
	}
}
