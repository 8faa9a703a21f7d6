package email

import (
	"fmt"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// Configured reports whether SMTP settings are present. Sending with an
// unconfigured service fails; callers check this to disable the action.
func (s *EmailService) Configured() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// SendInvoiceDocument mails an already-rendered invoice document as an HTML
// body to a single recipient.
func (s *EmailService) SendInvoiceDocument(toEmail, invoiceNumber, htmlBody string) error {
	if !s.Configured() {
		return fmt.Errorf("smtp is not configured")
	}
	subject := fmt.Sprintf("Fatura %s", invoiceNumber)
	message := s.buildHTMLEmail(toEmail, subject, htmlBody)
	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}
