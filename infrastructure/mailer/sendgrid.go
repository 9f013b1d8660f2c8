package mailer

import (
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/internal/config"
)

// Mailer delivers a message to an address. Delivery is fire-and-forget:
// callers never block on it and a failed send only logs.
type Mailer interface {
	Send(toEmail, subject, body string)
}

type sendgridMailer struct {
	client  *sendgrid.Client
	from    *sgmail.Email
	enabled bool
}

func NewSendgridMailer(cfg *config.Config) Mailer {
	return &sendgridMailer{
		client:  sendgrid.NewSendClient(cfg.Mail.SendgridAPIKey),
		from:    sgmail.NewEmail(cfg.App.Name, cfg.Mail.FromEmail),
		enabled: cfg.Mail.Enabled && cfg.Mail.SendgridAPIKey != "",
	}
}

func (m *sendgridMailer) Send(toEmail, subject, body string) {
	if !m.enabled {
		logrus.WithFields(logrus.Fields{
			"to":      toEmail,
			"subject": subject,
		}).Debug("mail disabled, skipping send")
		return
	}

	go func() {
		message := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail("", toEmail), body, "")

		response, err := m.client.Send(message)
		if err != nil {
			logrus.WithError(err).WithField("to", toEmail).Error("failed to send email")
			return
		}

		if response.StatusCode >= 400 {
			logrus.WithFields(logrus.Fields{
				"to":          toEmail,
				"status_code": response.StatusCode,
			}).Error("sendgrid rejected the message")
		}
	}()
}
