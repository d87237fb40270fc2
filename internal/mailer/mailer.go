package mailer

import (
	"fmt"
	"net/smtp"

	"floorcare/internal/config"
)

// SMTPMailer delivers password-reset OTPs over plain SMTP.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTP(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) SendResetOtp(to, otp string) error {
	if m.host == "" || m.port == "" || m.user == "" || m.pass == "" {
		return fmt.Errorf("smtp not configured")
	}

	subject := "Your Password Reset OTP"
	body := fmt.Sprintf("Your password reset OTP is %s. It expires in 10 minutes.\r\nIf you did not request a password reset, please ignore this email.", otp)

	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
