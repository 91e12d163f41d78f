package api

import (
	"context"
	"encoding/json/v2"
	"io"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gongyuapp/gongyu-server/internal/http/response"
	"github.com/gongyuapp/gongyu-server/internal/importer"
)

// Import endpoints stay on plain chi handlers: huma does not model
// multipart uploads well, and the uniform Result body needs no schema.
func (s *Server) registerImportRoutes() {
	s.router.Route("/api/v1/import", func(r chi.Router) {
		r.Use(s.importRateLimit)
		r.Post("/netscape", s.handleImportNetscape)
		r.Post("/datastore", s.handleImportDatastore)
		r.Post("/json", s.handleImportJSON)
		r.Post("/remote", s.handleImportRemote)
	})
}

// importRateLimit throttles import requests per client IP.
func (s *Server) importRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			response.TooManyRequests(w, "Too many import requests. Try again shortly.", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the request's client address without the port.
// The RealIP middleware has already resolved proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) handleImportNetscape(w http.ResponseWriter, r *http.Request) {
	s.handleFileImport(w, r, s.services.Imports.ImportNetscape)
}

func (s *Server) handleImportDatastore(w http.ResponseWriter, r *http.Request) {
	s.handleFileImport(w, r, s.services.Imports.ImportDatastore)
}

func (s *Server) handleImportJSON(w http.ResponseWriter, r *http.Request) {
	s.handleFileImport(w, r, s.services.Imports.ImportJSON)
}

// handleFileImport reads the uploaded file and runs it through the
// given import function.
func (s *Server) handleFileImport(w http.ResponseWriter, r *http.Request, run func(context.Context, []byte) (*importer.Result, error)) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	result, err := run(r.Context(), data)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// readUpload extracts the "file" field from a multipart form, honoring
// the configured size cap. On failure it writes the error response and
// returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadSize)

	if err := r.ParseMultipartForm(s.opts.MaxUploadSize); err != nil {
		response.BadRequest(w, "Failed to parse form data", s.logger)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file uploaded. Use 'file' field in multipart form", s.logger)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "Failed to read uploaded file", s.logger)
		return nil, false
	}
	return data, true
}

// RemoteImportRequest is the body for importing from a live Shaarli
// instance.
type RemoteImportRequest struct {
	BaseURL string `json:"base_url"`
	Secret  string `json:"secret"`
}

func (s *Server) handleImportRemote(w http.ResponseWriter, r *http.Request) {
	var req RemoteImportRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body", s.logger)
		return
	}
	if req.BaseURL == "" {
		response.BadRequest(w, "base_url is required", s.logger)
		return
	}

	result, err := s.services.Imports.ImportRemote(r.Context(), req.BaseURL, req.Secret)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}
