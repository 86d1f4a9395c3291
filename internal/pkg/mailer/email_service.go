// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"strings"

	"mindwel-be/internal/dto"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendHandoffAlert(toEmail string, notification dto.HandoffNotification) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendHandoffAlert(toEmail string, n dto.HandoffNotification) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Counselor handoff requested", strings.ToUpper(n.Urgency)))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>A conversation needs human follow-up</h2>
			<p><strong>Urgency:</strong> %s</p>
			<p><strong>Handoff ID:</strong> %s</p>
			<p><strong>Session:</strong> %s</p>
			<p><strong>Region:</strong> %s</p>
			<p><strong>Triggers:</strong> %s</p>
			<p>Open the counselor dashboard to accept this handoff. No message content
			is included in this email.</p>
		</div>
	`, n.Urgency, n.HandoffId, n.SessionId, n.Region, strings.Join(n.Triggers, ", "))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send handoff alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Handoff alert sent to %s\n", toEmail)
	return nil
}
