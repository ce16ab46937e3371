package services

import (
	"context"
	"fmt"

	"github.com/offerte-app/offerte/internal/export"
	"github.com/offerte-app/offerte/internal/logger"
	"github.com/offerte-app/offerte/internal/render"
)

// ExportService runs the two-stage export pipeline: render the preview,
// capture and compose it into the PDF artifact.
type ExportService struct {
	docs    *DocumentService
	quotes  *QuoteService
	builder *export.Builder
}

func NewExportService(docs *DocumentService, quotes *QuoteService, builder *export.Builder) *ExportService {
	return &ExportService{docs: docs, quotes: quotes, builder: builder}
}

// Generate builds a fresh artifact and installs it. On failure the
// previously held artifact (if any) is left untouched.
func (s *ExportService) Generate(ctx context.Context) (*export.Artifact, error) {
	doc := s.docs.Snapshot()
	totals := s.quotes.ComputeTotals(doc.Items)

	page, err := render.PreviewPage(&doc, totals)
	if err != nil {
		return nil, fmt.Errorf("export: rendering preview: %w", err)
	}
	artifact, err := s.builder.Build(ctx, page, doc.Offerte.Nummer, doc.Fotos)
	if err != nil {
		return nil, err
	}
	s.docs.SetArtifact(artifact)
	logger.Log.Info().Str("bestand", artifact.Filename).Int("bytes", len(artifact.PDF)).Msg("pdf gegenereerd")
	return artifact, nil
}
