package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/brewvino/placecards/pkg/buildinfo"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/pipeline"
	"github.com/brewvino/placecards/pkg/style"
)

// maxUploadBytes bounds the multipart form held in memory per request.
const maxUploadBytes = 8 << 20

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

// handleHealthz reports liveness and build info.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleGenerate runs the full pipeline on an uploaded CSV.
//
// Request: multipart form with a required "bookings" file (CSV) and an
// optional "style" file (JSON config). Query parameters: "format" (pdf,
// json, txt; default pdf), "service" (lunch/dinner filter), "refresh"
// (bypass cache).
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse multipart form"))
		return
	}

	csvData, err := readFormFile(r, "bookings")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var cfg style.Config
	if styleData, err := readFormFile(r, "style"); err == nil {
		if err := json.Unmarshal(styleData, &cfg); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse style"))
			return
		}
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatPDF
	}

	opts := pipeline.Options{
		CSV:     csvData,
		Service: r.URL.Query().Get("service"),
		Style:   cfg,
		Formats: []string{format},
		Refresh: r.URL.Query().Get("refresh") == "true",
		Logger:  s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// readFormFile reads one uploaded file from the multipart form.
func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing %q file", field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %q file", field)
	}
	return data, nil
}

// writeError maps structured error codes onto HTTP statuses and emits a
// JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeLayout:
		status = http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
