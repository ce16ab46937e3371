// Package models defines the quote document aggregate: company and customer
// identity, quote metadata, ordered line items, photo attachments and the
// email provider settings. The whole aggregate serializes to one JSON
// snapshot for persistence.
package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Company identity shown in the quote header. Free-form strings, nothing is
// required.
type Company struct {
	Naam     string `json:"naam"`
	Adres    string `json:"adres"`
	KVK      string `json:"kvk"`
	BTWNr    string `json:"btwNr"`
	Telefoon string `json:"telefoon"`
	Email    string `json:"email"`
}

// Customer receiving the quote.
type Customer struct {
	Naam     string `json:"naam"`
	Email    string `json:"email"`
	Telefoon string `json:"telefoon"`
	Adres    string `json:"adres"`
}

// Quote carries the document metadata. Dates are ISO strings (YYYY-MM-DD);
// Vervaldatum may be empty.
type Quote struct {
	Nummer      string `json:"nummer"`
	Datum       string `json:"datum"`
	Vervaldatum string `json:"vervaldatum"`
	Titel       string `json:"titel"`
	Notities    string `json:"notities"`
}

// LineItem is one billable row. Order within the document is significant for
// both display and totals.
type LineItem struct {
	Omschrijving string `json:"omschrijving"`
	Aantal       Num    `json:"aantal"`
	Prijs        Num    `json:"prijs"` // unit price excluding VAT
	BTW          Num    `json:"btw"`   // VAT rate as a percentage
}

// Photo is an attached image. Data is carried base64 in the snapshot; ID is
// the session display handle and is regenerated on load.
type Photo struct {
	ID       string `json:"id"`
	Naam     string `json:"naam"`
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// EmailConfig holds the provider credentials and the two message templates.
// Provider is a closed tag; only "emailjs" is supported.
type EmailConfig struct {
	Provider      string `json:"provider"`
	ServiceID     string `json:"serviceId"`
	TemplateID    string `json:"templateId"`
	PublicKey     string `json:"publicKey"`
	AfzenderNaam  string `json:"afzenderNaam"`
	AfzenderEmail string `json:"afzenderEmail"`
	Onderwerp     string `json:"onderwerp"`
	BerichtIntro  string `json:"berichtIntro"`
}

// Document is the full aggregate and the single source of truth the
// renderer, export and dispatch pipelines read.
type Document struct {
	Bedrijf  Company     `json:"bedrijf"`
	Klant    Customer    `json:"klant"`
	Offerte  Quote       `json:"offerte"`
	Items    []LineItem  `json:"items"`
	Fotos    []Photo     `json:"fotos"`
	EmailCfg EmailConfig `json:"emailCfg"`
}

const (
	ProviderEmailJS = "emailjs"

	defaultOnderwerp    = "Offerte {{offerteNummer}}"
	defaultBerichtIntro = "Beste {{klantNaam}},\n\nIn de bijlage vindt u de offerte. Neem gerust contact op bij vragen.\n\nMet vriendelijke groet,\n{{bedrijfNaam}}"
)

// DefaultItem returns a fresh line item with the standard Dutch VAT rate.
func DefaultItem() LineItem {
	return LineItem{Aantal: 1, Prijs: 0, BTW: 21}
}

// NewQuoteNumber generates the default identifier: OFF-<year>-<4 digits>.
func NewQuoteNumber() string {
	return fmt.Sprintf("OFF-%d-%d", time.Now().Year(), rand.Intn(9000)+1000)
}

// NewDocument builds the default document used on first load and after a
// reset.
func NewDocument() *Document {
	return &Document{
		Bedrijf: Company{
			Naam:  "Jouw Bedrijf BV",
			Adres: "Voorbeeldstraat 1, 1234 AB Amsterdam",
		},
		Offerte: Quote{
			Nummer: NewQuoteNumber(),
			Datum:  time.Now().Format("2006-01-02"),
			Titel:  "Offerte",
		},
		Items: []LineItem{DefaultItem()},
		EmailCfg: EmailConfig{
			Provider:     ProviderEmailJS,
			Onderwerp:    defaultOnderwerp,
			BerichtIntro: defaultBerichtIntro,
		},
	}
}

// Normalize patches a loaded document so the rest of the app never sees a
// degenerate shape: at least one line item, a provider tag, message template
// defaults and a display handle per photo.
func (d *Document) Normalize() {
	if len(d.Items) == 0 {
		d.Items = []LineItem{DefaultItem()}
	}
	if d.EmailCfg.Provider == "" {
		d.EmailCfg.Provider = ProviderEmailJS
	}
	if d.EmailCfg.Onderwerp == "" {
		d.EmailCfg.Onderwerp = defaultOnderwerp
	}
	if d.EmailCfg.BerichtIntro == "" {
		d.EmailCfg.BerichtIntro = defaultBerichtIntro
	}
	if d.Offerte.Nummer == "" {
		d.Offerte.Nummer = NewQuoteNumber()
	}
	if d.Offerte.Titel == "" {
		d.Offerte.Titel = "Offerte"
	}
	for i := range d.Fotos {
		if d.Fotos[i].ID == "" {
			d.Fotos[i].ID = uuid.NewString()
		}
		if d.Fotos[i].MimeType == "" {
			d.Fotos[i].MimeType = "image/jpeg"
		}
	}
}
