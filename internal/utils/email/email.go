package email

import (
	"fmt"
	"net/smtp"

	"github.com/finpulse/finpulse/internal/config"
	"github.com/finpulse/finpulse/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendAlerts sends the given alerts as a single digest email
func (s *Sender) SendAlerts(to string, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if len(alerts) == 1 {
		e.Subject = alerts[0].Title
	} else {
		e.Subject = fmt.Sprintf("%d spending alerts", len(alerts))
	}

	body := ""
	for _, a := range alerts {
		body += fmt.Sprintf("%s\n%s\n\n", a.Title, a.Message)
	}
	body += "Best regards,\nFinpulse"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert email to %s: %v", to, err)
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
