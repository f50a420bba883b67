package core

import (
	"errors"
	"strings"
)

// DefaultCategory is assigned to imported rows whose source file carries no
// category column.
const DefaultCategory = "Outros"

// Categories is the fixed list offered by the manual-entry form.
var Categories = []string{
	"Alimentação",
	"Moradia",
	"Transporte",
	"Lazer",
	"Saúde",
	"Investimento",
	"Outros",
}

type (
	Money struct {
		Cents int64
	}

	// Expense is the single domain entity: one spending record held in a
	// session's collection.
	Expense struct {
		Name     string
		Amount   Money
		Category string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyCategory = errors.New("empty category")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate enforces the manual-entry rules: non-empty name, positive amount,
// non-empty category. Imported records go through the normalizer's own rules
// instead, which allow negative amounts and a blank category.
func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Name)) == 0 {
		return ErrEmptyName
	}
	if len(e.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
