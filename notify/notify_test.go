package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMSNotifier(t *testing.T) {
	var received smsPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sid", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &Config{NimbaSmsUrl: srv.URL, NimbaSmsSID: "sid", NimbaSmsSecret: "secret", NimbaSmsSender: "ZaLaMa"}
	sms := NewSMSNotifier(c, newHTTPClient(time.Second))
	err := sms.Send(context.Background(), Recipient{Phone: "+224620000000"}, Message{Text: "Paiement reçu"})
	require.NoError(t, err)
	assert.Equal(t, []string{"+224620000000"}, received.To)
	assert.Equal(t, "Paiement reçu", received.Message)
	assert.Equal(t, "ZaLaMa", received.SenderName)
}

func TestSMSNotifierSkipsWithoutPhone(t *testing.T) {
	sms := NewSMSNotifier(&Config{NimbaSmsUrl: "http://127.0.0.1:1"}, newHTTPClient(time.Second))
	assert.NoError(t, sms.Send(context.Background(), Recipient{Email: "rh@partner.gn"}, Message{Text: "x"}))
}

func TestEmailNotifierError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	c := &Config{ResendApiUrl: srv.URL, ResendApiKey: "key", EmailFrom: "noreply@zalama.test"}
	err := NewEmailNotifier(c, newHTTPClient(time.Second)).Send(context.Background(), Recipient{Email: "rh@partner.gn"}, Message{Subject: "s", Text: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

type notifierFunc func(ctx context.Context, to Recipient, msg Message) error

func (f notifierFunc) Send(ctx context.Context, to Recipient, msg Message) error {
	return f(ctx, to, msg)
}

func TestMultiCallsEveryNotifier(t *testing.T) {
	calls := 0
	failing := notifierFunc(func(ctx context.Context, to Recipient, msg Message) error {
		calls++
		return errors.New("provider down")
	})
	ok := notifierFunc(func(ctx context.Context, to Recipient, msg Message) error {
		calls++
		return nil
	})
	err := Multi{failing, ok}.Send(context.Background(), Recipient{}, Message{})
	assert.EqualError(t, err, "provider down")
	assert.Equal(t, 2, calls)
}

func TestNewWithoutCredentials(t *testing.T) {
	n := New(&Config{Timeout: time.Second})
	assert.Len(t, n, 0)
	assert.NoError(t, n.Send(context.Background(), Recipient{Phone: "1"}, Message{}))
}
