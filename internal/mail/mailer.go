package mail

import (
	"fmt"
	"log"

	"github.com/expomeet/expomeet-server/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. A nil Mailer is a no-op so local
// environments without SMTP still work.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &Mailer{dialer: d, from: cfg.MailFrom}
}

func (m *Mailer) send(to, subject, body string) error {
	if m == nil {
		log.Printf("[mail] skipped (smtp not configured) to=%s subject=%q", to, subject)
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

// SendRegistrationReceived confirms an invited-buyer registration was
// recorded and is awaiting review.
func (m *Mailer) SendRegistrationReceived(to, name string) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for registering. Your application has been received and is
awaiting review. We will contact you once it has been processed.</p>`, name)
	return m.send(to, "Registration received", body)
}

// SendInvitation delivers an invitation link for buyer registration.
func (m *Mailer) SendInvitation(to, name, link string) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>You have been invited to register as a buyer. Complete your
registration here: <a href="%s">%s</a></p>`, name, link, link)
	return m.send(to, "You are invited to register", body)
}
