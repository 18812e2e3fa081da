package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends transactional email through the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
}

func NewSendGridMailer(apiKey string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
	}
}

func (m *SendGridMailer) Send(email Email) (string, error) {
	from := mail.NewEmail(email.FromName, email.FromEmail)
	to := mail.NewEmail(email.ToName, email.ToEmail)
	message := mail.NewSingleEmail(from, email.Subject, to, "", email.HTML)

	resp, err := m.client.Send(message)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	// SendGrid returns the message id in the X-Message-Id response header.
	if ids, ok := resp.Headers["X-Message-Id"]; ok && len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
