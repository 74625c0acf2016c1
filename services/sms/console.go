package smssvc

import (
	"log"
	"sync"

	"github.com/trezcool/somo/core"
)

var (
	SentMessages = make([]core.SMSMessage, 0)
	mu           sync.Mutex
)

type consoleService struct {
	disableOutput bool
}

var _ core.SMSService = (*consoleService)(nil)

func NewConsoleService() core.SMSService {
	return &consoleService{}
}

func (svc consoleService) SendMessages(messages ...core.SMSMessage) {
	for _, msg := range messages {
		msg := msg
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg core.SMSMessage) {
	if !(msg.HasRecipient() && msg.HasContent()) {
		return
	}
	if !svc.disableOutput {
		log.Printf("SMS to %s:\n%s\n", msg.To, msg.Body)
	}
	mu.Lock()
	SentMessages = append(SentMessages, msg)
	mu.Unlock()
}

// ClearSentMessages resets the recorded outbox between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}

// GetSentMessages returns a snapshot of the recorded outbox.
func GetSentMessages() []core.SMSMessage {
	mu.Lock()
	defer mu.Unlock()
	msgs := make([]core.SMSMessage, len(SentMessages))
	copy(msgs, SentMessages)
	return msgs
}

type consoleServiceMock struct {
	consoleService
}

func NewConsoleServiceMock() core.SMSService {
	return &consoleServiceMock{
		consoleService: consoleService{disableOutput: true},
	}
}

func (svc *consoleServiceMock) SendMessages(messages ...core.SMSMessage) {
	for _, msg := range messages {
		// run synchronously
		svc.sendMessage(msg)
	}
}
