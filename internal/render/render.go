// Package render projects the document model into HTML: a self-contained
// fragment for the email body and a full standalone page for the on-screen
// preview and the PDF capture.
package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/offerte-app/offerte/internal/format"
	"github.com/offerte-app/offerte/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	previewOnce sync.Once
	previewTpl  *template.Template
	previewErr  error
)

// Fragment builds the quote as one self-contained HTML fragment: company and
// customer header, line-item table with per-row totals, and the summary
// block. Every user-supplied field goes through format.EscapeHTML so
// free-form input cannot inject markup.
func Fragment(doc *models.Document, totals models.Totals) string {
	esc := format.EscapeHTML
	var rows strings.Builder
	for _, it := range doc.Items {
		netto := float64(it.Aantal) * float64(it.Prijs)
		btw := netto * float64(it.BTW) / 100
		omschrijving := it.Omschrijving
		if omschrijving == "" {
			omschrijving = "-"
		}
		fmt.Fprintf(&rows,
			`<tr><td>%s</td><td style="text-align:right">%v</td><td style="text-align:right">%s</td><td style="text-align:right">%v%%</td><td style="text-align:right">%s</td></tr>`,
			esc(omschrijving), float64(it.Aantal), format.Currency(float64(it.Prijs)), float64(it.BTW), format.Currency(netto+btw))
	}

	titel := doc.Offerte.Titel
	if titel == "" {
		titel = "Offerte"
	}
	kvk := doc.Bedrijf.KVK
	if kvk == "" {
		kvk = "-"
	}
	btwNr := doc.Bedrijf.BTWNr
	if btwNr == "" {
		btwNr = "-"
	}

	var b strings.Builder
	b.WriteString("<div>")
	fmt.Fprintf(&b, "<h2>%s – %s</h2>", esc(titel), esc(doc.Offerte.Nummer))
	fmt.Fprintf(&b, "<p><strong>%s</strong><br/>%s<br/>KVK: %s • BTW: %s<br/>%s • %s</p>",
		esc(doc.Bedrijf.Naam), esc(doc.Bedrijf.Adres), esc(kvk), esc(btwNr),
		esc(doc.Bedrijf.Telefoon), esc(doc.Bedrijf.Email))
	fmt.Fprintf(&b, "<p><strong>Aan:</strong> %s – %s</p>", esc(doc.Klant.Naam), esc(doc.Klant.Email))
	b.WriteString(`<table style="width:100%; border-collapse:collapse" border="1" cellpadding="6">`)
	b.WriteString(`<thead><tr><th>Omschrijving</th><th style="text-align:right">Aantal</th><th style="text-align:right">Prijs (ex)</th><th style="text-align:right">BTW %</th><th style="text-align:right">Totaal</th></tr></thead>`)
	b.WriteString("<tbody>")
	b.WriteString(rows.String())
	b.WriteString("</tbody></table>")
	if doc.Offerte.Notities != "" {
		fmt.Fprintf(&b, "<p>%s</p>", esc(doc.Offerte.Notities))
	}
	fmt.Fprintf(&b, `<p style="text-align:right">Subtotaal: %s<br/>BTW: %s<br/><strong>Totaal: %s</strong></p>`,
		format.Currency(totals.Subtotaal), format.Currency(totals.BTWTotaal), format.Currency(totals.Totaal))
	b.WriteString("</div>")
	return b.String()
}

type previewItem struct {
	Omschrijving string
	Aantal       float64
	Prijs        string
	BTW          float64
	Totaal       string
}

type previewData struct {
	Doc        *models.Document
	Items      []previewItem
	Subtotaal  string
	BTWTotaal  string
	Totaal     string
	Datum      string
	Geldig     string
	Thumbs     []template.URL
	ExtraFotos int
}

// PreviewPage renders the full standalone preview page: the surface that is
// shown in the UI and captured as the first PDF page. Photo thumbnails are
// inlined as data URLs so the page needs no external resources.
func PreviewPage(doc *models.Document, totals models.Totals) (string, error) {
	previewOnce.Do(func() {
		previewTpl, previewErr = template.ParseFS(templateFS, "templates/preview.html")
	})
	if previewErr != nil {
		return "", fmt.Errorf("render: parse preview template: %w", previewErr)
	}

	data := previewData{
		Doc:       doc,
		Subtotaal: format.Currency(totals.Subtotaal),
		BTWTotaal: format.Currency(totals.BTWTotaal),
		Totaal:    format.Currency(totals.Totaal),
		Datum:     format.Date(doc.Offerte.Datum),
		Geldig:    format.Date(doc.Offerte.Vervaldatum),
	}
	for _, it := range doc.Items {
		netto := float64(it.Aantal) * float64(it.Prijs)
		btw := netto * float64(it.BTW) / 100
		data.Items = append(data.Items, previewItem{
			Omschrijving: it.Omschrijving,
			Aantal:       float64(it.Aantal),
			Prijs:        format.Currency(float64(it.Prijs)),
			BTW:          float64(it.BTW),
			Totaal:       format.Currency(netto + btw),
		})
	}
	for i, f := range doc.Fotos {
		if i == 6 {
			data.ExtraFotos = len(doc.Fotos) - 6
			break
		}
		uri := "data:" + f.MimeType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
		data.Thumbs = append(data.Thumbs, template.URL(uri))
	}

	var buf bytes.Buffer
	if err := previewTpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render: execute preview template: %w", err)
	}
	return buf.String(), nil
}
