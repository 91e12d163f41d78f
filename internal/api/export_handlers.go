package api

import (
	"fmt"
	"net/http"

	"github.com/gongyuapp/gongyu-server/internal/http/response"
)

// The export endpoint serves a file attachment, so it bypasses huma
// and its JSON envelope.
func (s *Server) registerExportRoutes() {
	s.router.Get("/api/v1/export", s.handleExport)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	file, err := s.services.Exports.Export(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	if _, err := w.Write(file.Content); err != nil {
		s.logger.Error("failed to write export", "error", err)
	}
}
