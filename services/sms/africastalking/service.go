// Package atsms sends text messages through the Africa's Talking messaging API.
package atsms

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trezcool/somo/core"
)

const endpoint = "/version1/messaging"

type service struct {
	host     string
	username string
	apiKey   string
	sender   string
	client   *http.Client
	logger   core.Logger
}

var _ core.SMSService = (*service)(nil)

func NewService(conf *core.Config, logger core.Logger) *service {
	return &service{
		host:     conf.SMS.Host,
		username: conf.SMS.Username,
		apiKey:   conf.SMS.ApiKey,
		sender:   conf.SMS.Sender,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

func (svc service) SendMessages(messages ...core.SMSMessage) {
	for _, msg := range messages {
		msg := msg
		go func() {
			if msg.HasRecipient() && msg.HasContent() {
				svc.send(msg)
			}
		}()
	}
}

func (svc service) send(msg core.SMSMessage) {
	form := make(url.Values)
	form.Set("username", svc.username)
	form.Set("to", msg.To)
	form.Set("message", msg.Body)
	if svc.sender != "" {
		form.Set("from", svc.sender)
	}

	req, err := http.NewRequest(http.MethodPost, svc.host+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		svc.logger.Error(fmt.Sprintf("preparing SMS to %s: %v", msg.To, err), err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", svc.apiKey)

	res, err := svc.client.Do(req)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("sending SMS to %s: %v", msg.To, err), err)
		return
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= http.StatusBadRequest {
		svc.logger.Error(fmt.Sprintf("sending SMS to %s - status: %d", msg.To, res.StatusCode))
	}
	// todo: retries ??
	// todo: handle per-recipient status from the response body ??
}
