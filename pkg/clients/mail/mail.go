package mail

import (
	"context"
	"fmt"

	"github.com/arsonstech/fieldservice/internal/config"
	"github.com/arsonstech/fieldservice/internal/domain/models"
)

const reminderSubject = "Service Due Reminder - Arsons Tech Solutions"

// Mailer sends exactly one outbound message per call. Implementations never
// panic across this boundary; every transport failure comes back as an error
// so the reminder sweep can isolate failures per record.
type Mailer interface {
	SendServiceDueReminder(ctx context.Context, reminder models.ServiceReminder) error
}

// New builds the Mailer selected by MAIL_PROVIDER.
func New(ctx context.Context, cfg config.MailConfig) (Mailer, error) {
	switch cfg.Provider {
	case config.MailProviderGmail:
		return NewGmailMailer(ctx, cfg)
	case config.MailProviderBrevo:
		return NewBrevoMailer(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.Provider)
	}
}

// reminderHTML renders the reminder body sent to the customer.
func reminderHTML(reminder models.ServiceReminder) string {
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #2D2B2A;">Service Due Reminder</h2>
      <p>Dear %s,</p>
      <p>This is a reminder that your vehicle is due for service in 7 days.</p>

      <div style="background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px;">
        <h3 style="color: #8B7355; margin-top: 0;">Vehicle Details:</h3>
        <p><strong>Serial Number:</strong> %s</p>
        <p><strong>Model:</strong> %s</p>
        <p><strong>Service Due Date:</strong> %s</p>
      </div>

      <p>Please contact us to schedule your service appointment.</p>

      <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
        <p style="color: #666;">Best Regards,</p>
        <p style="color: #8B7355; font-weight: bold;">Arsons Tech Solutions</p>
      </div>
    </div>`,
		reminder.CustomerName,
		reminder.Vehicle.SerialNo,
		reminder.Vehicle.Model,
		reminder.DueDate.Format("02/01/2006"),
	)
}
