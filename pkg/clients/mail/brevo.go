package mail

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/arsonstech/fieldservice/internal/config"
	"github.com/arsonstech/fieldservice/internal/domain/models"
)

// BrevoMailer sends reminders through the Brevo transactional email HTTP API.
type BrevoMailer struct {
	httpClient *resty.Client
	sender     string
}

// NewBrevoMailer builds a Brevo backed Mailer from the provided configuration.
func NewBrevoMailer(cfg config.MailConfig) *BrevoMailer {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("api-key", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &BrevoMailer{
		httpClient: restyClient,
		sender:     cfg.Sender,
	}
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoSendRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoSendResponse struct {
	MessageID string `json:"messageId"`
}

// brevoError represents a Brevo API error payload.
type brevoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendServiceDueReminder sends one reminder email to the customer address.
func (m *BrevoMailer) SendServiceDueReminder(ctx context.Context, reminder models.ServiceReminder) error {
	payload := brevoSendRequest{
		Sender:      brevoAddress{Email: m.sender},
		To:          []brevoAddress{{Email: reminder.CustomerEmail, Name: reminder.CustomerName}},
		Subject:     reminderSubject,
		HTMLContent: reminderHTML(reminder),
	}

	result := new(brevoSendResponse)
	apiErr := new(brevoError)

	resp, err := m.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("/v3/smtp/email")
	if err != nil {
		return fmt.Errorf("send reminder to %s: %w", reminder.CustomerEmail, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("brevo api error: status=%d, code=%s, message=%s",
			resp.StatusCode(), apiErr.Code, apiErr.Message)
	}

	return nil
}
