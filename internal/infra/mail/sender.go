package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"
)

var alertTemplate = template.Must(template.New("failure_alert").Parse(`A contact sync run failed.

Run:        {{.RunID}}
Handle:     {{.Handle}}
Subdomain:  {{.Subdomain}}
Failed at:  {{.FailedAt.Format "2006-01-02T15:04:05Z07:00"}}
{{- if .ErrorCode}}
Error code: {{.ErrorCode}}
{{- end}}

{{.Error}}
`))

// NewEmailSender sends through d, normally a *gomail.Dialer.
func NewEmailSender(d Dialer, from string, to []string) *EmailSender {
	return &EmailSender{From: from, To: to, dialer: d}
}

func (s *EmailSender) SendFailureAlert(data FailureAlertData) error {
	if len(s.To) == 0 {
		return fmt.Errorf("no alert recipients configured")
	}
	if data.FailedAt.IsZero() {
		data.FailedAt = time.Now().UTC()
	}

	body, err := renderFailureAlert(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To...)
	m.SetHeader("Subject", fmt.Sprintf("contactsync failed for %s", data.Handle))
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}

	return nil
}

func renderFailureAlert(data FailureAlertData) (string, error) {
	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render alert template: %w", err)
	}
	return body.String(), nil
}
