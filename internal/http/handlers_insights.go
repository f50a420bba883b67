package http

import (
	"errors"
	"fmt"
	"hash/fnv"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"financas/internal/ai"
	"financas/internal/core"
	"financas/internal/session"
)

// handleInsights asks the AI client for financial tips built from the current
// session snapshot. Responses are cached per snapshot.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	snap, ok := s.store.Snapshot(sessionID(r))
	if !ok || len(snap.Expenses) == 0 {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="warning">Adicione despesas antes de gerar insights.</div>`))
		return
	}
	if s.tips == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<div class="error">Análise inteligente não configurada</div>`))
		return
	}

	key := snapshotKey(snap)
	tips, cached := s.insightsCache.Get(key)
	if !cached {
		ov := core.Summarize(snap.Income, snap.Expenses)
		var err error
		tips, err = s.tips.GenerateTips(r.Context(), ov, snap.Expenses)
		if err != nil {
			if errors.Is(err, ai.ErrMissingAPIKey) {
				slog.WarnContext(r.Context(), "Insights requested without API key")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`<div class="error">GEMINI_API_KEY não configurada</div>`))
				return
			}
			slog.ErrorContext(r.Context(), "Insights generation failed", "error", err)
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<div class="error">Erro ao gerar insights. Tente novamente.</div>`))
			return
		}
		s.insightsCache.Set(key, tips)
	}

	slog.InfoContext(r.Context(), "Insights served", "cached", cached, "length", len(tips))
	w.WriteHeader(http.StatusOK)
	body := template.HTMLEscapeString(tips)
	body = strings.ReplaceAll(body, "\n", "<br>")
	_, _ = w.Write([]byte(`<div class="insights">` + body + `</div>`))
}

// snapshotKey hashes the financial snapshot so identical data reuses the
// cached insights instead of re-calling the API.
func snapshotKey(snap session.Snapshot) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|", snap.Income.Cents)
	for _, e := range snap.Expenses {
		fmt.Fprintf(h, "%s\x00%d\x00%s|", e.Name, e.Amount.Cents, e.Category)
	}
	return fmt.Sprintf("%x", h.Sum64())
}
