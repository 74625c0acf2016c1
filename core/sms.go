package core

// SMSMessage is a single outbound text message to one MSISDN.
// Bodies longer than one segment are concatenated by the gateway.
type SMSMessage struct {
	To   string
	Body string
}

func (m SMSMessage) HasRecipient() bool { return m.To != "" }
func (m SMSMessage) HasContent() bool   { return m.Body != "" }

// SMSService is any service that can send text messages.
type SMSService interface {
	// SendMessages sends messages concurrently; delivery is best-effort and
	// failures must never propagate to the caller.
	SendMessages(messages ...SMSMessage)
}
