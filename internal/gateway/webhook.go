package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vesaa/maderas/internal/models"
)

// WebhookPayload is the JSON body posted to the webhook.
type WebhookPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	WoodType string `json:"woodType"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

// Webhook forwards inquiries as JSON to an HTTP endpoint (a CRM, a form
// backend). Every request carries: Authorization: Bearer <token> when a
// token is configured.
type Webhook struct {
	url    string
	token  string
	client *http.Client
}

// NewWebhook creates a webhook gateway. A zero timeout means 10s.
func NewWebhook(url, token string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{url: url, token: token, client: &http.Client{Timeout: timeout}}
}

func (g *Webhook) Submit(ctx context.Context, inq models.Inquiry) error {
	return g.postJSON(ctx, WebhookPayload{
		Name:     inq.Name,
		Email:    inq.Email,
		Phone:    inq.Phone,
		WoodType: inq.WoodType,
		Message:  inq.Message,
		Source:   inq.Source,
	})
}

func (g *Webhook) postJSON(ctx context.Context, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("webhook rejected token (401), check webhook_token in config")
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
