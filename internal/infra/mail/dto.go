package mail

import (
	"time"

	"gopkg.in/gomail.v2"
)

// FailureAlertData feeds the failure alert template.
type FailureAlertData struct {
	RunID     string
	Handle    string
	Subdomain string
	ErrorCode string
	Error     string
	FailedAt  time.Time
}

// Dialer is the part of *gomail.Dialer the sender uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	To     []string
	dialer Dialer
}
