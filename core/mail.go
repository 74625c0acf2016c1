package core

import "net/mail"

// EmailMessage is a simple text/plain message; this service sends short
// notifications only, so there is no templating or attachment support.
type EmailMessage struct {
	To      []mail.Address
	Subject string
	Body    string
}

func (m EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m EmailMessage) HasContent() bool    { return m.Body != "" }

// EmailService is any service that can send emails
type EmailService interface {
	// SendMessages sends messages concurrently
	SendMessages(messages ...*EmailMessage)
}
