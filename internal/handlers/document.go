package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/offerte-app/offerte/internal/httpx"
	"github.com/offerte-app/offerte/internal/models"
	"github.com/offerte-app/offerte/internal/services"
)

// DocumentHandler exposes the document model over JSON: reads return the
// aggregate plus derived totals, writes replace one logical field group per
// request.
type DocumentHandler struct {
	Docs   *services.DocumentService
	Quotes *services.QuoteService
}

func NewDocumentHandler(docs *services.DocumentService, quotes *services.QuoteService) *DocumentHandler {
	return &DocumentHandler{Docs: docs, Quotes: quotes}
}

// photoView is the API shape of an attachment: the handle, not the payload.
type photoView struct {
	ID       string `json:"id"`
	Naam     string `json:"naam"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
}

type documentView struct {
	Bedrijf  models.Company     `json:"bedrijf"`
	Klant    models.Customer    `json:"klant"`
	Offerte  models.Quote       `json:"offerte"`
	Items    []models.LineItem  `json:"items"`
	Fotos    []photoView        `json:"fotos"`
	EmailCfg models.EmailConfig `json:"emailCfg"`
	Totals   services.Totals    `json:"totals"`
	PDFReady bool               `json:"pdfReady"`
	Status   string             `json:"status"`
}

// Get: GET /api/document
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc := h.Docs.Snapshot()
	view := documentView{
		Bedrijf:  doc.Bedrijf,
		Klant:    doc.Klant,
		Offerte:  doc.Offerte,
		Items:    doc.Items,
		Fotos:    []photoView{},
		EmailCfg: doc.EmailCfg,
		Totals:   h.Quotes.ComputeTotals(doc.Items),
		PDFReady: h.Docs.Artifact() != nil,
		Status:   h.Docs.Status(),
	}
	for _, f := range doc.Fotos {
		view.Fotos = append(view.Fotos, photoView{
			ID: f.ID, Naam: f.Naam, MimeType: f.MimeType, URL: "/photos/" + f.ID,
		})
	}
	httpx.JSON(w, http.StatusOK, view)
}

// UpdateCompany: PUT /api/company
func (h *DocumentHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var c models.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	h.Docs.SetCompany(c)
	h.Get(w, r)
}

// UpdateCustomer: PUT /api/customer
func (h *DocumentHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	h.Docs.SetCustomer(c)
	h.Get(w, r)
}

// UpdateQuote: PUT /api/quote
func (h *DocumentHandler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	var q models.Quote
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	h.Docs.SetQuote(q)
	h.Get(w, r)
}

// UpdateSettings: PUT /api/settings
func (h *DocumentHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var cfg models.EmailConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	h.Docs.SetEmailConfig(cfg)
	h.Get(w, r)
}

// AddItem: POST /api/items – appends a default row.
func (h *DocumentHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	h.Docs.AddItem()
	h.Get(w, r)
}

// UpdateItem: POST /api/items/update?i=N – replaces one row. Malformed
// numerics coerce to zero via models.Num; nothing is rejected.
func (h *DocumentHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.URL.Query().Get("i"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_index", nil)
		return
	}
	var it models.LineItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	h.Docs.SetItem(i, it)
	h.Get(w, r)
}

// DeleteItem: POST /api/items/delete?i=N – positional splice.
func (h *DocumentHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.URL.Query().Get("i"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_index", nil)
		return
	}
	h.Docs.RemoveItem(i)
	h.Get(w, r)
}
