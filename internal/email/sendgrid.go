// Package email delivers the audit reports over SendGrid's v3 mail-send API.
package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"catalog-audit/internal/httpx"
)

type Config struct {
	APIKey    string
	BaseURL   string // defaults to the public API host
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.SugaredLogger
}

func New(cfg Config, log *zap.SugaredLogger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("email: missing SENDGRID_API_KEY")
	}
	if strings.TrimSpace(cfg.FromEmail) == "" {
		return nil, fmt.Errorf("email: missing sender address")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}, nil
}

// Attachment is one CSV report to attach.
type Attachment struct {
	Filename string
	Content  []byte
}

// SendGrid mail-send wire types.
type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
	Attachments      []sgAttachment    `json:"attachments,omitempty"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgAttachment struct {
	Content     string `json:"content"`
	Type        string `json:"type,omitempty"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition,omitempty"`
}

// SendReport emails the plain-text summary with the report files attached.
func (c *Client) SendReport(ctx context.Context, subject, body string, recipients []string, attachments []Attachment) error {
	if len(recipients) == 0 {
		return fmt.Errorf("email: no recipients configured")
	}

	to := make([]emailAddress, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		to = append(to, emailAddress{Email: r})
	}
	if len(to) == 0 {
		return fmt.Errorf("email: no recipients configured")
	}

	atts := make([]sgAttachment, 0, len(attachments))
	for _, a := range attachments {
		if a.Filename == "" {
			return fmt.Errorf("email: attachment without a filename")
		}
		atts = append(atts, sgAttachment{
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			Type:        "text/csv",
			Filename:    a.Filename,
			Disposition: "attachment",
		})
	}

	wire := mailSendRequest{
		Personalizations: []personalization{{To: to}},
		From:             emailAddress{Email: c.cfg.FromEmail, Name: c.cfg.FromName},
		Subject:          subject,
		Content:          []mailContent{{Type: "text/plain", Value: body}},
		Attachments:      atts,
	}

	payload, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("email: marshal request: %w", err)
	}

	buildReq := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v3/mail/send", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	resp, _, err := httpx.DoWithRetry(ctx, c.http, buildReq, httpx.DefaultRetryConfig())
	if err != nil {
		return fmt.Errorf("email: send failed: %w", err)
	}

	if c.log != nil {
		c.log.Infow("report email sent",
			"recipients", len(to),
			"attachments", len(atts),
			"status", resp.StatusCode,
			"message_id", resp.Header.Get("X-Message-Id"),
		)
	}
	return nil
}
