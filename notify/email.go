package notify

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
)

// EmailNotifier sends emails through the Resend API.
type EmailNotifier struct {
	url        string
	apiKey     string
	from       string
	httpClient *http.Client
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
	Text    string   `json:"text"`
}

func NewEmailNotifier(c *Config, httpClient *http.Client) *EmailNotifier {
	return &EmailNotifier{
		url:        strings.TrimRight(c.ResendApiUrl, "/") + "/emails",
		apiKey:     c.ResendApiKey,
		from:       c.EmailFrom,
		httpClient: httpClient,
	}
}

func (e *EmailNotifier) Send(ctx context.Context, to Recipient, msg Message) error {
	if to.Email == "" {
		return nil
	}
	payload := emailPayload{
		From:    e.from,
		To:      []string{to.Email},
		Subject: msg.Subject,
		Html:    renderHtml(to, msg),
		Text:    msg.Text,
	}
	err := postJSON(ctx, e.httpClient, e.url, payload, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	})
	if err != nil {
		return fmt.Errorf("email to %s: %w", to.Email, err)
	}
	return nil
}

func renderHtml(to Recipient, msg Message) string {
	b := strings.Builder{}
	if to.Name != "" {
		fmt.Fprintf(&b, "<p>Bonjour %s,</p>", html.EscapeString(to.Name))
	}
	for _, line := range strings.Split(msg.Text, "\n") {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(line))
	}
	b.WriteString("<p>L'équipe ZaLaMa</p>")
	return b.String()
}
