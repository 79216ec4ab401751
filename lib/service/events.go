package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
)

const eventBufferSize = 100

type RemboursementEvent struct {
	Event         string               `json:"event"`
	Remboursement models.Remboursement `json:"remboursement"`
	PartenaireNom string               `json:"partenaire_nom,omitempty"`
	EmittedAt     time.Time            `json:"emitted_at"`
}

func (svc *ZalamaService) publishCreated(r models.Remboursement) {
	if svc.RemboursementPubSub == nil {
		return
	}
	svc.publish(common.EventRemboursementCreated, r)
}

func (svc *ZalamaService) publishStatut(rows []models.Remboursement) {
	if svc.RemboursementPubSub == nil {
		return
	}
	for _, r := range rows {
		svc.publish(common.EventRemboursementStatut, r)
	}
}

func (svc *ZalamaService) publish(topic string, r models.Remboursement) {
	if dropped := svc.RemboursementPubSub.Publish(topic, r); dropped > 0 {
		svc.Logger.Warnf("Dropped %s event for remboursement %s: %d subscriber(s) full", topic, r.ID, dropped)
	}
}

// SubscribeRemboursements returns one channel per event type.
func (svc *ZalamaService) SubscribeRemboursements() (created chan models.Remboursement, updated chan models.Remboursement, err error) {
	created = make(chan models.Remboursement, eventBufferSize)
	updated = make(chan models.Remboursement, eventBufferSize)
	svc.RemboursementPubSub.Subscribe(common.EventRemboursementCreated, created)
	svc.RemboursementPubSub.Subscribe(common.EventRemboursementStatut, updated)
	return created, updated, nil
}

// EventName is "remboursement.<statut>", also used as the broker routing key.
func EventName(r models.Remboursement) string {
	return "remboursement." + strings.ToLower(r.Statut)
}

// EncodeRemboursementEvent writes the event payload published to the message broker and the webhook.
func (svc *ZalamaService) EncodeRemboursementEvent(ctx context.Context, w io.Writer, r models.Remboursement) error {
	event := RemboursementEvent{
		Event:         EventName(r),
		Remboursement: r,
		EmittedAt:     now(),
	}
	partner := models.Partner{}
	if err := svc.DB.NewSelect().Model(&partner).Where("id = ?", r.PartenaireID).Scan(ctx); err == nil {
		event.PartenaireNom = partner.Nom
	}
	return json.NewEncoder(w).Encode(event)
}
