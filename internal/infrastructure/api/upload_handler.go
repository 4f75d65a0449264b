package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"commerce-admin-core/internal/application"
	"commerce-admin-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// UploadHandler serves the file upload and download endpoints.
type UploadHandler struct {
	uploads *application.UploadService
	logger  zerolog.Logger
	maxSize int64
}

// NewUploadHandler creates a new upload handler. maxSize caps the parsed
// multipart body size.
func NewUploadHandler(uploads *application.UploadService, logger zerolog.Logger, maxSize int64) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		logger:  logger,
		maxSize: maxSize,
	}
}

// RegisterRoutes mounts the upload endpoints on the router.
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Post("/uploads", h.Upload)
	r.Get("/uploads/{key}", h.Download)
	r.Delete("/uploads/{key}", h.Delete)
}

// Upload handles POST /uploads with a multipart "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: invalid multipart body", domain.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: file field is required", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stored, err := h.uploads.Upload(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// Download handles GET /uploads/{key}
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	rc, err := h.uploads.Fetch(r.Context(), key)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error().Err(err).Str("key", key).Msg("Failed to stream upload")
	}
}

// Delete handles DELETE /uploads/{key}
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.uploads.Remove(r.Context(), key); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
