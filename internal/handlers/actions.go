package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/offerte-app/offerte/internal/httpx"
	"github.com/offerte-app/offerte/internal/selftest"
	"github.com/offerte-app/offerte/internal/services"
)

// ActionHandler runs the long-lived operations: PDF generation, e-mail
// dispatch and document reset. One job at a time; a second request while
// busy gets 409 with the current status line.
type ActionHandler struct {
	Docs     *services.DocumentService
	Exporter *services.ExportService
	Dispatch *services.DispatchService
}

func NewActionHandler(docs *services.DocumentService, exporter *services.ExportService, dispatch *services.DispatchService) *ActionHandler {
	return &ActionHandler{Docs: docs, Exporter: exporter, Dispatch: dispatch}
}

// GeneratePDF: POST /api/pdf
func (h *ActionHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	if !h.Docs.TryBeginJob() {
		httpx.JSONStatus(w, http.StatusConflict, h.Docs.Status())
		return
	}
	defer h.Docs.EndJob()

	h.Docs.SetStatus("PDF genereren…")
	if _, err := h.Exporter.Generate(r.Context()); err != nil {
		status := fmt.Sprintf("Fout bij PDF genereren: %s", err)
		h.Docs.SetStatus(status)
		httpx.JSONStatus(w, http.StatusInternalServerError, status)
		return
	}
	status := "PDF klaar (niet verzonden). Je kunt nu mailen of downloaden."
	h.Docs.SetStatus(status)
	httpx.JSONStatus(w, http.StatusOK, status)
}

// DownloadPDF: GET /api/pdf – streams the last generated artifact.
func (h *ActionHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	art := h.Docs.Artifact()
	if art == nil {
		httpx.JSONError(w, http.StatusNotFound, "no_pdf", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	if _, err := w.Write(art.PDF); err != nil {
		_ = err
	}
}

// Send: POST /api/send
func (h *ActionHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !h.Docs.TryBeginJob() {
		httpx.JSONStatus(w, http.StatusConflict, h.Docs.Status())
		return
	}
	defer h.Docs.EndJob()

	h.Docs.SetStatus("E-mail verzenden…")
	if err := h.Dispatch.Send(r.Context()); err != nil {
		var pre *services.PreconditionError
		if errors.As(err, &pre) {
			h.Docs.SetStatus(pre.Msg)
			httpx.JSONStatus(w, http.StatusBadRequest, pre.Msg)
			return
		}
		status := fmt.Sprintf("Fout bij e-mail verzenden: %s", err)
		h.Docs.SetStatus(status)
		httpx.JSONStatus(w, http.StatusInternalServerError, status)
		return
	}
	status := "E-mail verzonden! (controleer je inbox/uitgaande mail in EmailJS)"
	h.Docs.SetStatus(status)
	httpx.JSONStatus(w, http.StatusOK, status)
}

// Reset: POST /api/reset – drops the stored snapshot and starts over.
func (h *ActionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Docs.Reset()
	httpx.JSONStatus(w, http.StatusOK, "Alles gewist.")
}

// Status: GET /api/status
func (h *ActionHandler) Status(w http.ResponseWriter, r *http.Request) {
	httpx.JSONStatus(w, http.StatusOK, h.Docs.Status())
}

// SelfTests: GET /api/selftests – runs the built-in checks on demand.
func (h *ActionHandler) SelfTests(w http.ResponseWriter, r *http.Request) {
	results := selftest.Run()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"results": results,
		"allPass": selftest.AllPass(results),
	})
}
