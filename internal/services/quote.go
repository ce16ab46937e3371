package services

import (
	"github.com/offerte-app/offerte/internal/models"
)

// Totals lives with the document model so the renderer can consume it
// without depending on this package.
type Totals = models.Totals

// QuoteService encapsulates quote-level business logic.
type QuoteService struct{}

func NewQuoteService() *QuoteService { return &QuoteService{} }

// ComputeTotals computes the net subtotal, VAT total and grand total over
// the ordered line items. Each line contributes quantity x unit price net
// and net x rate/100 VAT. Pure and O(n); numeric coercion to zero has
// already happened at the parsing boundary.
func (s *QuoteService) ComputeTotals(items []models.LineItem) Totals {
	var t Totals
	for _, it := range items {
		netto := float64(it.Aantal) * float64(it.Prijs)
		btw := netto * float64(it.BTW) / 100
		t.Subtotaal += netto
		t.BTWTotaal += btw
	}
	t.Totaal = t.Subtotaal + t.BTWTotaal
	return t
}
