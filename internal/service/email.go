package service

import (
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional mail through Resend. Without an API
// key (development) it logs the mail instead of sending it.
type EmailService struct {
	client  *resend.Client
	from    string
	appURL  string
	appName string
	logOnly bool
}

func NewEmailService(apiKey, from, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	logOnly := apiKey == ""
	if !logOnly {
		client = resend.NewClient(apiKey)
	} else if !isDev {
		slog.Warn("email service running in log mode without RESEND_API_KEY")
	}

	return &EmailService{
		client:  client,
		from:    from,
		appURL:  appURL,
		appName: appName,
		logOnly: logOnly,
	}
}

// SendVerificationEmail mails the signup confirmation link.
func (s *EmailService) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify-email/%s", s.appURL, token)

	subject := fmt.Sprintf("Confirm your %s account", s.appName)
	html := fmt.Sprintf(
		`<p>Welcome to %s!</p><p>Confirm your email address to activate your account:</p><p><a href="%s">Confirm email</a></p><p>If you did not sign up, you can ignore this message.</p>`,
		s.appName, link,
	)

	return s.send(to, subject, html)
}

func (s *EmailService) send(to, subject, html string) error {
	if s.logOnly {
		slog.Info("email (log mode)", "to", to, "subject", subject)
		return nil
	}

	_, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
