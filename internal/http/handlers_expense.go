package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"financas/internal/core"
)

// handleCreateExpense registers one manually entered expense.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de requisição inválido</div>`))
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	category := sanitizeInput(r.Form.Get("category"))

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Valor inválido</div>`))
		return
	}

	exp := core.Expense{
		Name:     name,
		Amount:   core.Money{Cents: cents},
		Category: category,
	}
	if err := exp.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Dados inválidos: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	if _, err := s.store.Append(sessionID(r), exp); err != nil {
		slog.ErrorContext(r.Context(), "Expense append error", "error", err, "expense", exp.Name, "amount", exp.Amount.Cents)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao registrar despesa</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"expenses:changed": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Despesa registrada: ` +
		template.HTMLEscapeString(exp.Name) +
		` — ` + formatReais(exp.Amount.Cents) +
		` (` + template.HTMLEscapeString(exp.Category) + `)</div>`))
}

// handleSetIncome updates the session's monthly income.
func (s *Server) handleSetIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de requisição inválido</div>`))
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(r.Form.Get("income")))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Renda inválida</div>`))
		return
	}

	if err := s.store.SetIncome(sessionID(r), core.Money{Cents: cents}); err != nil {
		slog.ErrorContext(r.Context(), "Set income error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao atualizar renda</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"expenses:changed": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Renda mensal: ` + formatReais(cents) + `</div>`))
}

// handleClear empties the session's collection and restores the default income.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := s.store.Clear(sessionID(r)); err != nil {
		slog.ErrorContext(r.Context(), "Clear session error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao limpar dados</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"expenses:changed": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Dados da sessão removidos</div>`))
}
