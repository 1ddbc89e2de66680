package mail

import (
	"context"
	"encoding/base64"
	"fmt"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/arsonstech/fieldservice/internal/config"
	"github.com/arsonstech/fieldservice/internal/domain/models"
)

// GmailMailer sends reminders through the Gmail API using the configured
// service account credentials.
type GmailMailer struct {
	service *gmailapi.Service
	sender  string
}

// NewGmailMailer builds a Gmail backed Mailer.
func NewGmailMailer(ctx context.Context, cfg config.MailConfig) (*GmailMailer, error) {
	service, err := gmailapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(gmailapi.GmailSendScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gmail client: %w", err)
	}

	return &GmailMailer{service: service, sender: cfg.Sender}, nil
}

// SendServiceDueReminder sends one reminder email to the customer address.
func (m *GmailMailer) SendServiceDueReminder(ctx context.Context, reminder models.ServiceReminder) error {
	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.sender, reminder.CustomerEmail, reminderSubject, reminderHTML(reminder))

	message := &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := m.service.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("send reminder to %s: %w", reminder.CustomerEmail, err)
	}
	return nil
}
