package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through SendGrid. With no API key
// configured it becomes a no-op, so local development works without one.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

func NewEmailService(apiKey, sender string) *EmailService {
	if apiKey == "" {
		return &EmailService{}
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

func (es *EmailService) send(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return nil
	}

	from := sgmail.NewEmail("", es.sender)
	to := sgmail.NewEmail("", toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendWelcomeEmail greets a freshly registered user. Callers treat failures
// as non-fatal; registration never depends on mail delivery.
func (es *EmailService) SendWelcomeEmail(toEmail, name string) error {
	subject := "Welcome to the shop"
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Your account has been created. Happy shopping!",
		name,
	)
	return es.send(toEmail, subject, htmlContent)
}
