package lengo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

var ErrGatewayDisabled = errors.New("lengo pay gateway is not configured")

// Gateway is the cash-in side of Lengo Pay used by the service.
type Gateway interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error)
}

type PaymentRequest struct {
	Amount int64
	// Account is the payer's mobile money number, optional
	Account string
}

type paymentPayload struct {
	WebsiteID   string `json:"websiteid"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Account     string `json:"account,omitempty"`
	CallbackUrl string `json:"callback_url,omitempty"`
	ReturnUrl   string `json:"return_url,omitempty"`
}

type PaymentResponse struct {
	Status     string `json:"status"`
	PayID      string `json:"pay_id"`
	PaymentUrl string `json:"payment_url"`
}

type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: config.Timeout,
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}
}

func (client *Client) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	if !client.config.Enabled() {
		return nil, ErrGatewayDisabled
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("lengo: invalid amount %d", req.Amount)
	}
	payload := paymentPayload{
		WebsiteID:   client.config.SiteID,
		Amount:      req.Amount,
		Currency:    client.config.Currency,
		Account:     req.Account,
		CallbackUrl: client.config.CallbackUrl,
		ReturnUrl:   client.config.ReturnUrl,
	}
	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(payload); err != nil {
		return nil, err
	}

	response := &PaymentResponse{}
	if err := client.request(ctx, http.MethodPost, "/api/v1/payments", body, response); err != nil {
		return nil, err
	}
	if !strings.EqualFold(response.Status, "success") || response.PayID == "" {
		return nil, fmt.Errorf("lengo: payment was not accepted, status %q", response.Status)
	}
	return response, nil
}

func (client *Client) request(ctx context.Context, method, endpoint string, body io.Reader, response interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(client.config.ApiUrl, "/")+endpoint, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Basic "+client.config.LicenseKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := client.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("lengo: bad http response status code %d for request %s: %s", resp.StatusCode, httpReq.URL, msg)
	}
	return json.NewDecoder(resp.Body).Decode(response)
}
