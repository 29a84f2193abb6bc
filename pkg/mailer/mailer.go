package mailer

import (
	"fmt"
	"net/smtp"

	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type Mailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		config: config,
		log:    log,
	}
}

// SendVerificationCode emails the 6-digit registration code. When SMTP is
// not configured the code is logged instead so local development still
// works end to end.
func (m *Mailer) SendVerificationCode(to, code string) error {
	if m.config.Host == "" {
		m.log.Info("SMTP not configured, logging verification code",
			zap.String("email", to),
			zap.String("code", code))
		return nil
	}

	subject := "Verify your email"
	body := fmt.Sprintf("Your verification code is %s. It expires in 24 hours.", code)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.config.From, to, subject, body))

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send verification email to %s: %w", to, err)
	}

	return nil
}
