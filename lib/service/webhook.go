package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lib/security"
)

const WebhookSignatureHeader = "X-Zalama-Signature"

var webhookClient = &http.Client{Timeout: 10 * time.Second}

func (svc *ZalamaService) StartWebhookSubscription(ctx context.Context, url string) {
	svc.Logger.Infof("Starting webhook subscription with webhook url %s", url)
	created := make(chan models.Remboursement, eventBufferSize)
	updated := make(chan models.Remboursement, eventBufferSize)
	createdSub := svc.RemboursementPubSub.Subscribe(common.EventRemboursementCreated, created)
	updatedSub := svc.RemboursementPubSub.Subscribe(common.EventRemboursementStatut, updated)
	defer svc.RemboursementPubSub.Unsubscribe(createdSub, common.EventRemboursementCreated)
	defer svc.RemboursementPubSub.Unsubscribe(updatedSub, common.EventRemboursementStatut)
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-created:
			svc.postToWebhook(ctx, url, r)
		case r := <-updated:
			svc.postToWebhook(ctx, url, r)
		}
	}
}

func (svc *ZalamaService) postToWebhook(ctx context.Context, url string, r models.Remboursement) {
	payload := new(bytes.Buffer)
	err := svc.EncodeRemboursementEvent(ctx, payload, r)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload.Bytes()))
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if svc.Config.WebhookSecret != "" {
		req.Header.Set(WebhookSignatureHeader, security.Sign(svc.Config.WebhookSecret, payload.Bytes()))
	}

	resp, err := webhookClient.Do(req)
	if err != nil {
		svc.captureErr(fmt.Errorf("webhook post for remboursement %s: %w", r.ID, err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
