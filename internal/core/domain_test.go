package core

import "testing"

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Name: "Mercado", Amount: Money{Cents: 100}, Category: "Alimentação"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Name: "", Amount: Money{Cents: 1}, Category: "c"},
		{Name: "   ", Amount: Money{Cents: 1}, Category: "c"},
		{Name: "a", Amount: Money{Cents: 0}, Category: "c"},
		{Name: "a", Amount: Money{Cents: -1}, Category: "c"},
		{Name: "a", Amount: Money{Cents: 1}, Category: ""},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
