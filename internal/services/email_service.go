package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendVerificationEmail(email, firstName, token string) error
}

type emailService struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, baseURL string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:  dialer,
		from:    fromEmail,
		baseURL: baseURL,
	}
}

func (s *emailService) SendVerificationEmail(email, firstName, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify your DigiSanchar account")

	verificationURL := fmt.Sprintf("%s/api/auth/verify/%s", s.baseURL, token)

	body := fmt.Sprintf(`
		<h2>Welcome to DigiSanchar, %s!</h2>
		<p>Thank you for creating an account. Please verify your email address by clicking the link below:</p>
		<p><a href="%s" style="background: #00c851; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px;">Verify Email</a></p>
		<p>If you didn't create this account, you can safely ignore this email.</p>
		<p>Best regards,<br>The DigiSanchar Team</p>
	`, firstName, verificationURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}
