package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/offerte-app/offerte/internal/httpx"
	"github.com/offerte-app/offerte/internal/services"
)

// 8 MB per upload request, matching what a browser form reasonably sends.
const maxUploadBytes = 8 << 20

// PhotoHandler manages photo attachments: multipart upload, removal by
// handle, and serving the raw bytes back for thumbnails.
type PhotoHandler struct {
	Docs   *services.DocumentService
	Quotes *services.QuoteService
}

func NewPhotoHandler(docs *services.DocumentService, quotes *services.QuoteService) *PhotoHandler {
	return &PhotoHandler{Docs: docs, Quotes: quotes}
}

// Upload: POST /api/photos – multipart form, field "fotos", repeatable.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart", nil)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["fotos"]) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "no_files", nil)
		return
	}
	for _, fh := range r.MultipartForm.File["fotos"] {
		f, err := fh.Open()
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "unreadable_file", nil)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "unreadable_file", nil)
			return
		}
		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = "application/octet-stream"
		}
		h.Docs.AddPhoto(fh.Filename, mime, data)
	}
	doc := NewDocumentHandler(h.Docs, h.Quotes)
	doc.Get(w, r)
}

// Delete: POST /api/photos/delete?id=<handle>
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	h.Docs.RemovePhoto(id)
	doc := NewDocumentHandler(h.Docs, h.Quotes)
	doc.Get(w, r)
}

// Serve: GET /photos/{id} – raw bytes with the stored content type.
func (h *PhotoHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/photos/")
	foto, ok := h.Docs.PhotoByHandle(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", foto.MimeType)
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(foto.Data); err != nil {
		_ = err
	}
}
