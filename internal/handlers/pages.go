package handlers

import (
	"net/http"

	"github.com/offerte-app/offerte/internal/render"
	"github.com/offerte-app/offerte/internal/services"
)

// PageHandler serves the server-rendered quote preview. This is the same
// page the PDF pipeline captures, so what you see is what gets exported.
type PageHandler struct {
	Docs   *services.DocumentService
	Quotes *services.QuoteService
}

func NewPageHandler(docs *services.DocumentService, quotes *services.QuoteService) *PageHandler {
	return &PageHandler{Docs: docs, Quotes: quotes}
}

// Preview: GET /preview
func (h *PageHandler) Preview(w http.ResponseWriter, r *http.Request) {
	doc := h.Docs.Snapshot()
	page, err := render.PreviewPage(&doc, h.Quotes.ComputeTotals(doc.Items))
	if err != nil {
		http.Error(w, "preview rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(page)); err != nil {
		_ = err
	}
}
