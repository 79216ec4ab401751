package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// SMSNotifier sends text messages through the Nimba SMS API.
type SMSNotifier struct {
	url        string
	sid        string
	secret     string
	sender     string
	httpClient *http.Client
}

type smsPayload struct {
	To         []string `json:"to"`
	Message    string   `json:"message"`
	SenderName string   `json:"sender_name"`
}

func NewSMSNotifier(c *Config, httpClient *http.Client) *SMSNotifier {
	return &SMSNotifier{
		url:        strings.TrimRight(c.NimbaSmsUrl, "/") + "/v1/messages",
		sid:        c.NimbaSmsSID,
		secret:     c.NimbaSmsSecret,
		sender:     c.NimbaSmsSender,
		httpClient: httpClient,
	}
}

func (s *SMSNotifier) Send(ctx context.Context, to Recipient, msg Message) error {
	if to.Phone == "" {
		return nil
	}
	payload := smsPayload{
		To:         []string{to.Phone},
		Message:    msg.Text,
		SenderName: s.sender,
	}
	err := postJSON(ctx, s.httpClient, s.url, payload, func(req *http.Request) {
		req.SetBasicAuth(s.sid, s.secret)
	})
	if err != nil {
		return fmt.Errorf("sms to %s: %w", to.Phone, err)
	}
	return nil
}
