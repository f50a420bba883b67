package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"financas/internal/core"
	"financas/internal/export"
	"financas/internal/session"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady performs a readiness check with dependency verification.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}
	if s.store == nil {
		checks["sessions"] = "failed: store not configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["sessions"] = "ok"
	}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleIndex renders the dashboard page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap, _ := s.store.Snapshot(sessionID(r))
	data := struct {
		Categories []string
		Income     string
	}{
		Categories: core.Categories,
		Income:     formatReais(snap.Income.Cents),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleOverview renders the metrics + category breakdown partial.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	snap, ok := s.store.Snapshot(sessionID(r))
	if !ok {
		snap = session.Snapshot{}
	}
	ov := core.Summarize(snap.Income, snap.Expenses)

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Saldo: ` + formatReais(ov.Balance.Cents) + `</div></section>`))
		return
	}

	// Compute max category for progress scaling
	var maxCents int64
	for _, c := range ov.ByCategory {
		if c.Amount.Cents > maxCents {
			maxCents = c.Amount.Cents
		}
	}

	type row struct {
		Name, Amount string
		Width        int
	}
	type item struct {
		Name, Amount, Category string
	}
	data := struct {
		Income      string
		Spent       string
		Balance     string
		Negative    bool
		HasExpenses bool
		Rows        []row
		Items       []item
	}{
		Income:      formatReais(ov.Income.Cents),
		Spent:       formatReais(ov.Spent.Cents),
		Balance:     formatReais(ov.Balance.Cents),
		Negative:    ov.Balance.Cents < 0,
		HasExpenses: len(snap.Expenses) > 0,
	}
	for _, c := range ov.ByCategory {
		width := 0
		if maxCents > 0 && c.Amount.Cents > 0 {
			width = int((c.Amount.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width > 0 && width < 2 {                               // ensure visibility for very small values
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		name := c.Name
		if name == "" {
			name = "(sem categoria)"
		}
		data.Rows = append(data.Rows, row{Name: name, Amount: formatReais(c.Amount.Cents), Width: width})
	}
	for _, e := range snap.Expenses {
		data.Items = append(data.Items, item{
			Name:     e.Name,
			Amount:   formatReais(e.Amount.Cents),
			Category: e.Category,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "overview.html")
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Erro ao carregar panorama</div></section>`))
	}
}

// handleExport streams the session's expenses as an XLSX download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Snapshot(sessionID(r))
	if !ok {
		snap = session.Snapshot{}
	}
	ov := core.Summarize(snap.Income, snap.Expenses)

	data, err := export.Workbook(ov, snap.Expenses)
	if err != nil {
		slog.ErrorContext(r.Context(), "Workbook export failed", "error", err, "records", len(snap.Expenses))
		http.Error(w, "erro ao gerar planilha", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	_, _ = w.Write(data)
}
