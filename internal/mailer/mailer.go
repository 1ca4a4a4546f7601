package mailer

import (
	"context"
	"fmt"
	"html"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const resetSubject = "Password Reset Request"

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPMailer sends password reset emails over SMTP with STARTTLS.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendPasswordReset mails the reset link to the given address.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	msg, err := buildResetMessage(m.cfg.Username, to, resetLink)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	m.logger.Info("Password reset email sent", zap.String("to", to))
	return nil
}

func buildResetMessage(from, to, resetLink string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(resetSubject)
	msg.SetBodyString(mail.TypeTextPlain, resetText(resetLink))
	msg.AddAlternativeString(mail.TypeTextHTML, resetHTML(resetLink))
	return msg, nil
}

func resetText(link string) string {
	return "You requested a password reset. Please click the following link to reset your password: " + link
}

func resetHTML(link string) string {
	return fmt.Sprintf(
		`<p>You requested a password reset.</p><p>Please click the link below to reset your password:</p><a href="%s">Reset Password</a>`,
		html.EscapeString(link),
	)
}

// LogMailer writes reset links to the log instead of sending them. Used when SMTP is not configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	m.logger.Warn("SMTP not configured, password reset link not mailed",
		zap.String("to", to),
		zap.String("reset_link", resetLink),
	)
	return nil
}
