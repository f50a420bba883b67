package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"financas/internal/ingest"
)

// handleImport accepts a CSV/XLSX upload, runs it through the normalizer and
// merges the result into the session's collection. Following the normalizer's
// never-crash policy, a file that yields nothing is reported, not failed.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`<div class="error">Arquivo muito grande</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Parse multipart error", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de requisição inválido</div>`))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Nenhum arquivo enviado</div>`))
		return
	}
	defer file.Close()

	res := ingest.Normalize(header.Filename, file)
	slog.InfoContext(r.Context(), "Upload normalized",
		"filename", header.Filename,
		"rows_imported", len(res.Records),
		"rows_dropped", res.Dropped)

	if len(res.Records) == 0 {
		// Best effort import: nothing usable is a warning, not a failure
		w.WriteHeader(http.StatusOK)
		if res.Dropped > 0 {
			_, _ = w.Write([]byte(fmt.Sprintf(`<div class="warning">Nenhum lançamento válido (%d linhas descartadas)</div>`, res.Dropped)))
		} else {
			_, _ = w.Write([]byte(`<div class="warning">Nenhum dado importado</div>`))
		}
		return
	}

	if _, err := s.store.AppendAll(sessionID(r), res.Records); err != nil {
		slog.ErrorContext(r.Context(), "Import append error", "error", err, "records", len(res.Records))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao salvar importação</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"expenses:changed": {}}`)
	w.WriteHeader(http.StatusOK)
	msg := fmt.Sprintf(`<div class="success">Importados %d lançamentos`, len(res.Records))
	if res.Dropped > 0 {
		msg += fmt.Sprintf(` (%d linhas descartadas)`, res.Dropped)
	}
	msg += `</div>`
	_, _ = w.Write([]byte(msg))
}
