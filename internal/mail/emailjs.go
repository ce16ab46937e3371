package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/offerte-app/offerte/internal/models"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS sends through the EmailJS REST API using the three credentials the
// user configured out of band.
type EmailJS struct {
	cfg      models.EmailConfig
	endpoint string
	client   *http.Client
}

func NewEmailJS(cfg models.EmailConfig) *EmailJS {
	return &EmailJS{
		cfg:      cfg,
		endpoint: emailJSEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type emailJSAttachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64
}

type emailJSRequest struct {
	ServiceID      string              `json:"service_id"`
	TemplateID     string              `json:"template_id"`
	UserID         string              `json:"user_id"`
	TemplateParams map[string]string   `json:"template_params"`
	Attachments    []emailJSAttachment `json:"attachments,omitempty"`
}

// Send posts the message. Any non-2xx response surfaces the provider's body
// verbatim as the failure reason.
func (e *EmailJS) Send(ctx context.Context, msg Message, attachments []Attachment) error {
	req := emailJSRequest{
		ServiceID:  e.cfg.ServiceID,
		TemplateID: e.cfg.TemplateID,
		UserID:     e.cfg.PublicKey,
		TemplateParams: map[string]string{
			"subject":      msg.Subject,
			"message":      msg.Body,
			"to_email":     msg.ToEmail,
			"to_name":      msg.ToName,
			"from_name":    msg.FromName,
			"from_email":   msg.FromEmail,
			"html_content": msg.HTML,
		},
	}
	for _, a := range attachments {
		req.Attachments = append(req.Attachments, emailJSAttachment{
			Name:        a.Filename,
			ContentType: a.MIME,
			Data:        base64.StdEncoding.EncodeToString(a.Data),
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("mail: encoding request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mail: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mail: sending via EmailJS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail: EmailJS rejected the message: %s", bytes.TrimSpace(reason))
	}
	return nil
}
