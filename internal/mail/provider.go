// Package mail sends the generated quote through a transactional-email
// provider. Providers form a closed set behind the Provider interface;
// adding one means a new tag plus implementation, not a string comparison in
// the dispatch flow.
package mail

import (
	"context"
	"fmt"

	"github.com/offerte-app/offerte/internal/models"
)

// Message carries the fixed field set every provider accepts.
type Message struct {
	Subject   string
	Body      string // plain text
	ToEmail   string
	ToName    string
	FromName  string
	FromEmail string
	HTML      string // rich content fragment
}

// Attachment is a binary payload with its sanitized filename and MIME type.
type Attachment struct {
	Filename string
	MIME     string
	Data     []byte
}

// Provider delivers one message with its attachments. Implementations
// return the provider's failure reason unchanged; no retries.
type Provider interface {
	Send(ctx context.Context, msg Message, attachments []Attachment) error
}

// ProviderFor resolves the configured provider tag. Unknown tags fail
// before any network use.
func ProviderFor(cfg models.EmailConfig) (Provider, error) {
	switch cfg.Provider {
	case models.ProviderEmailJS:
		return NewEmailJS(cfg), nil
	default:
		return nil, fmt.Errorf("mail: unsupported provider %q", cfg.Provider)
	}
}
