package session

import (
	"testing"
	"time"

	"financas/internal/core"
)

func newTestStore() *Store {
	s := NewStore(core.Money{Cents: 500000}, time.Hour)
	return s
}

func TestEnsureCreatesSession(t *testing.T) {
	s := newTestStore()
	defer s.Stop()

	id := s.Ensure("")
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	snap, ok := s.Snapshot(id)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if snap.Income.Cents != 500000 {
		t.Fatalf("expected default income 500000, got %d", snap.Income.Cents)
	}
	if len(snap.Expenses) != 0 {
		t.Fatalf("expected empty collection, got %d", len(snap.Expenses))
	}

	// Known IDs are kept
	if again := s.Ensure(id); again != id {
		t.Fatalf("expected same id back, got %q", again)
	}
	// Unknown IDs are replaced
	if again := s.Ensure("bogus"); again == "bogus" {
		t.Fatal("expected a fresh id for an unknown session")
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := newTestStore()
	defer s.Stop()
	id := s.Ensure("")

	if _, err := s.Append(id, core.Expense{Name: "Café", Amount: core.Money{Cents: 1250}, Category: "Alimentação"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	n, err := s.AppendAll(id, []core.Expense{
		{Name: "Aluguel", Amount: core.Money{Cents: 150000}, Category: "Moradia"},
		{Name: "Academia", Amount: core.Money{Cents: 3000}, Category: ""},
	})
	if err != nil {
		t.Fatalf("append all: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 records, got %d", n)
	}

	snap, _ := s.Snapshot(id)
	names := []string{"Café", "Aluguel", "Academia"}
	for i, want := range names {
		if snap.Expenses[i].Name != want {
			t.Fatalf("record %d: expected %q, got %q", i, want, snap.Expenses[i].Name)
		}
	}
}

func TestAppendValidates(t *testing.T) {
	s := newTestStore()
	defer s.Stop()
	id := s.Ensure("")

	if _, err := s.Append(id, core.Expense{Name: "", Amount: core.Money{Cents: 1}, Category: "c"}); err == nil {
		t.Fatal("expected validation error for empty name")
	}
	if _, err := s.Append("missing", core.Expense{Name: "a", Amount: core.Money{Cents: 1}, Category: "c"}); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore()
	defer s.Stop()
	id := s.Ensure("")
	_, _ = s.Append(id, core.Expense{Name: "Café", Amount: core.Money{Cents: 1250}, Category: "Alimentação"})

	snap, _ := s.Snapshot(id)
	snap.Expenses[0].Name = "mutated"

	again, _ := s.Snapshot(id)
	if again.Expenses[0].Name != "Café" {
		t.Fatalf("store state leaked through snapshot: %+v", again.Expenses[0])
	}
}

func TestClearResetsIncomeAndExpenses(t *testing.T) {
	s := newTestStore()
	defer s.Stop()
	id := s.Ensure("")
	_, _ = s.Append(id, core.Expense{Name: "Café", Amount: core.Money{Cents: 1250}, Category: "Alimentação"})
	if err := s.SetIncome(id, core.Money{Cents: 777700}); err != nil {
		t.Fatalf("set income: %v", err)
	}

	if err := s.Clear(id); err != nil {
		t.Fatalf("clear: %v", err)
	}

	snap, ok := s.Snapshot(id)
	if !ok {
		t.Fatal("session should survive a clear")
	}
	if len(snap.Expenses) != 0 {
		t.Fatalf("expected empty collection, got %d", len(snap.Expenses))
	}
	if snap.Income.Cents != 500000 {
		t.Fatalf("expected income reset to default, got %d", snap.Income.Cents)
	}
}

func TestEvictStale(t *testing.T) {
	s := NewStore(core.Money{Cents: 500000}, time.Minute)
	defer s.Stop()

	id := s.Ensure("")
	if s.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", s.Len())
	}

	// Not yet past the TTL
	if n := s.evictStale(time.Now()); n != 0 {
		t.Fatalf("expected no evictions, got %d", n)
	}
	// Well past it
	if n := s.evictStale(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, ok := s.Snapshot(id); ok {
		t.Fatal("expected session gone after eviction")
	}
}
