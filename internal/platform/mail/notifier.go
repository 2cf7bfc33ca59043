// Package mail sends task reminder email over SMTP.
//
// Delivery is best-effort by contract: callers dispatch reminders from a
// detached goroutine, failures are logged and never retried, and no delivery
// status propagates back to the HTTP request that triggered the send.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tasknest/tasknest-api/internal/config"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	gomail "github.com/wneessen/go-mail"
)

// reminderSubject is the fixed subject line for task reminder mail.
const reminderSubject = "Task Reminder"

// Notifier defines the interface for sending task reminders.
type Notifier interface {
	// SendTaskReminder composes and dispatches a plain-text reminder for a
	// newly created task. Returns an error if dispatch fails; callers are
	// expected to log it and move on.
	SendTaskReminder(ctx context.Context, to, title, deadline string) error
}

// SMTPNotifier implements Notifier over an authenticated SMTP connection.
// The underlying client is safe for concurrent use.
type SMTPNotifier struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

// Ensure SMTPNotifier implements Notifier interface
var _ Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier creates a notifier from the mail account configuration.
// If logger is nil, a default logger will be used.
func NewSMTPNotifier(cfg config.MailConfig, logger *slog.Logger) (*SMTPNotifier, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPNotifier{
		client: client,
		from:   cfg.Sender(),
		logger: logger.With(slog.String("component", "notifier")),
	}, nil
}

// SendTaskReminder implements Notifier.SendTaskReminder.
func (n *SMTPNotifier) SendTaskReminder(ctx context.Context, to, title, deadline string) error {
	log := logger.FromContextOrDefault(ctx, n.logger)

	msg, err := ComposeReminder(n.from, to, title, deadline)
	if err != nil {
		return err
	}

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	log.Info("reminder sent")
	return nil
}

// ComposeReminder builds the reminder message for a newly created task.
// Exposed separately from dispatch so the composition can be verified
// without an SMTP server.
func ComposeReminder(from, to, title, deadline string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(reminderSubject)
	msg.SetBodyString(gomail.TypeTextPlain, ReminderBody(title, deadline))
	return msg, nil
}

// ReminderBody renders the plain-text body for a task reminder.
// The title is interpolated raw between plain quote characters; it must not
// be Go-escaped, so a title containing quotes or non-ASCII text reads exactly
// as the user typed it.
func ReminderBody(title, deadline string) string {
	return fmt.Sprintf("You added a task: \"%s\" which is due on %s", title, deadline)
}
