package notification_service

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/motorpass/motorpass-server/src/config/env"
	"github.com/pterm/pterm"
)

// SMTPNotifier implements Notifier using SMTP.
type SMTPNotifier struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

// NewSMTPNotifier creates a new SMTP notifier from the environment config.
func NewSMTPNotifier() *SMTPNotifier {
	return &SMTPNotifier{
		host:     env.SMTPHost,
		port:     env.SMTPPort,
		user:     env.SMTPUser,
		password: env.SMTPPassword,
		from:     env.SMTPFrom,
	}
}

func (s *SMTPNotifier) sendEmail(to, subject, body string) error {
	if s.host == "" {
		// Log-only mode if SMTP not configured
		pterm.DefaultLogger.Info(fmt.Sprintf("[EMAIL] To: %s, Subject: %s", to, subject))
		return nil
	}

	auth := smtp.PlainAuth("", s.user, s.password, s.host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.from, to, subject, body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg))
}

type notificationData struct {
	Name    string
	Vehicle string
}

func (s *SMTPNotifier) SendMembershipActivated(to, memberName, vehicleLabel string) error {
	subject := "Your vehicle membership is active"

	tmpl := `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Welcome back, {{.Name}}!</h2>
        <p>Membership coverage for <strong>{{.Vehicle}}</strong> is now active.</p>
        <p>You can review your coverage any time from your member wallet.</p>
    </div>
</body>
</html>
`
	return s.render(to, subject, tmpl, notificationData{Name: memberName, Vehicle: vehicleLabel})
}

func (s *SMTPNotifier) SendMembershipCancelled(to, memberName, vehicleLabel string) error {
	subject := "Your vehicle membership has been cancelled"

	tmpl := `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Hi {{.Name}},</h2>
        <p>Membership coverage for <strong>{{.Vehicle}}</strong> has been cancelled.</p>
        <p>If this was a mistake you can re-subscribe from your member wallet.</p>
    </div>
</body>
</html>
`
	return s.render(to, subject, tmpl, notificationData{Name: memberName, Vehicle: vehicleLabel})
}

func (s *SMTPNotifier) render(to, subject, tmpl string, data notificationData) error {
	t, err := template.New("notification").Parse(tmpl)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return err
	}

	return s.sendEmail(to, subject, body.String())
}
