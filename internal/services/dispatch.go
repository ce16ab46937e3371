package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/offerte-app/offerte/internal/format"
	"github.com/offerte-app/offerte/internal/logger"
	"github.com/offerte-app/offerte/internal/mail"
	"github.com/offerte-app/offerte/internal/models"
	"github.com/offerte-app/offerte/internal/render"
)

// ErrPrecondition marks dispatch failures detected before any external call.
var ErrPrecondition = errors.New("dispatch precondition failed")

// PreconditionError carries the user-facing message naming which
// precondition failed.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }
func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// DispatchService sends the artifact and supporting content by email.
type DispatchService struct {
	docs     *DocumentService
	quotes   *QuoteService
	exporter *ExportService

	// providerFor resolves the configured provider; replaced in tests.
	providerFor func(models.EmailConfig) (mail.Provider, error)
}

func NewDispatchService(docs *DocumentService, quotes *QuoteService, exporter *ExportService) *DispatchService {
	return &DispatchService{
		docs:        docs,
		quotes:      quotes,
		exporter:    exporter,
		providerFor: mail.ProviderFor,
	}
}

func precondition(status string) error {
	return &PreconditionError{Msg: status}
}

// Send checks its preconditions, exports when no artifact is held, builds
// the message from the configured templates and hands it to the provider.
// The returned error's message is what the status line shows.
func (s *DispatchService) Send(ctx context.Context) error {
	doc := s.docs.Snapshot()

	if doc.Klant.Email == "" {
		return precondition("Vul een klant e-mailadres in.")
	}
	provider, err := s.providerFor(doc.EmailCfg)
	if err != nil {
		return precondition("Alleen EmailJS is nu ondersteund.")
	}
	if doc.EmailCfg.ServiceID == "" || doc.EmailCfg.TemplateID == "" || doc.EmailCfg.PublicKey == "" {
		return precondition("Vul EmailJS Service ID, Template ID en Public Key in bij Instellingen.")
	}

	artifact := s.docs.Artifact()
	if artifact == nil {
		artifact, err = s.exporter.Generate(ctx)
		if err != nil {
			return err
		}
	}

	totals := s.quotes.ComputeTotals(doc.Items)
	vars := map[string]string{
		"offerteNummer": doc.Offerte.Nummer,
		"klantNaam":     doc.Klant.Naam,
		"bedrijfNaam":   doc.Bedrijf.Naam,
	}
	onderwerp := format.Template(doc.EmailCfg.Onderwerp, vars)
	intro := format.Template(doc.EmailCfg.BerichtIntro, vars)

	toName := doc.Klant.Naam
	if toName == "" {
		toName = doc.Klant.Email
	}
	fromName := doc.EmailCfg.AfzenderNaam
	if fromName == "" {
		fromName = doc.Bedrijf.Naam
	}
	fromEmail := doc.EmailCfg.AfzenderEmail
	if fromEmail == "" {
		fromEmail = doc.Bedrijf.Email
	}

	msg := mail.Message{
		Subject: onderwerp,
		Body: fmt.Sprintf("%s\n\nSamenvatting:\nTotaal: %s\nOffertenummer: %s",
			intro, format.Currency(totals.Totaal), doc.Offerte.Nummer),
		ToEmail:   doc.Klant.Email,
		ToName:    toName,
		FromName:  fromName,
		FromEmail: fromEmail,
		HTML:      render.Fragment(&doc, totals),
	}

	attachments := []mail.Attachment{
		{Filename: artifact.Filename, MIME: "application/pdf", Data: artifact.PDF},
	}
	for i, foto := range doc.Fotos {
		attachments = append(attachments, mail.Attachment{
			Filename: fmt.Sprintf("foto-%d-%s", i+1, format.SanitizeFilename(foto.Naam)),
			MIME:     foto.MimeType,
			Data:     foto.Data,
		})
	}

	if err := provider.Send(ctx, msg, attachments); err != nil {
		return err
	}
	logger.Log.Info().Str("ontvanger", doc.Klant.Email).Str("offerte", doc.Offerte.Nummer).Msg("e-mail verzonden")
	return nil
}
