package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/Morymirco/admin.zalama/rabbitmq"
	"github.com/Morymirco/admin.zalama/rabbitmq/mock_rabbitmq"
	"github.com/golang/mock/gomock"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

//go:generate mockgen -destination=./mock_rabbitmq/rabbitmq.go github.com/Morymirco/admin.zalama/rabbitmq CallbackReconciler,AMQPClient

type recordingAcknowledger struct {
	mu     sync.Mutex
	acked  []uint64
	nacked []uint64
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *recordingAcknowledger) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.acked) + len(a.nacked)
}

func TestConsumeLengoCallbacks(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reconciler := mock_rabbitmq.NewMockCallbackReconciler(ctrl)
	amqpClient := mock_rabbitmq.NewMockAMQPClient(ctrl)

	client, err := rabbitmq.NewClient(amqpClient,
		rabbitmq.WithLengoCallbackExchange("lengo_callback_test"),
		rabbitmq.WithLengoCallbackQueueName("lengo_callback_test_consumer"),
	)
	assert.NoError(t, err)

	ch := make(chan amqp.Delivery, 3)
	amqpClient.EXPECT().
		Listen(gomock.Any(), gomock.Eq("lengo_callback_test"), gomock.Eq("lengo.callback.#"), gomock.Eq("lengo_callback_test_consumer")).
		Times(1).
		Return((<-chan amqp.Delivery)(ch), nil)

	reconciler.EXPECT().
		HandleLengoCallback(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(_ context.Context, cb *lengo.Callback) error {
			assert.Equal(t, "pay-success", cb.PayID)
			assert.Equal(t, "SUCCESS", cb.Status)
			return nil
		})
	reconciler.EXPECT().
		HandleLengoCallback(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(_ context.Context, cb *lengo.Callback) error {
			assert.Equal(t, "pay-unknown", cb.PayID)
			return errors.New("unknown pay_id")
		})

	ack := &recordingAcknowledger{}
	success, err := json.Marshal(&lengo.Callback{PayID: "pay-success", Status: "SUCCESS"})
	assert.NoError(t, err)
	unknown, err := json.Marshal(&lengo.Callback{PayID: "pay-unknown", Status: "FAILED"})
	assert.NoError(t, err)

	ch <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: success}
	ch <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("{not json")}
	ch <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: unknown}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- client.ConsumeLengoCallbacks(ctx, reconciler)
	}()

	assert.Eventually(t, func() bool { return ack.total() == 3 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	assert.Equal(t, []uint64{1}, ack.acked)
	// malformed payloads and failed reconciliations are dropped, not requeued
	assert.Equal(t, []uint64{2, 3}, ack.nacked)
}

func TestConsumeLengoCallbacksDisconnected(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reconciler := mock_rabbitmq.NewMockCallbackReconciler(ctrl)
	amqpClient := mock_rabbitmq.NewMockAMQPClient(ctrl)

	client, err := rabbitmq.NewClient(amqpClient)
	assert.NoError(t, err)

	ch := make(chan amqp.Delivery)
	close(ch)
	amqpClient.EXPECT().
		Listen(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return((<-chan amqp.Delivery)(ch), nil)

	err = client.ConsumeLengoCallbacks(context.Background(), reconciler)
	assert.ErrorIs(t, err, rabbitmq.ErrDisconnected)
}

func TestStartPublishRemboursements(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	amqpClient := mock_rabbitmq.NewMockAMQPClient(ctrl)
	client, err := rabbitmq.NewClient(amqpClient, rabbitmq.WithRemboursementExchange("remboursement_test"))
	assert.NoError(t, err)

	amqpClient.EXPECT().
		ExchangeDeclare(gomock.Eq("remboursement_test"), gomock.Eq("topic"), gomock.Eq(true), gomock.Eq(false), gomock.Eq(false), gomock.Eq(false), gomock.Nil()).
		Return(nil)

	type published struct {
		key  string
		body models.Remboursement
	}
	publishedCh := make(chan published, 2)
	amqpClient.EXPECT().
		PublishWithContext(gomock.Any(), gomock.Eq("remboursement_test"), gomock.Any(), gomock.Eq(false), gomock.Eq(false), gomock.Any()).
		Times(2).
		DoAndReturn(func(_ context.Context, _ string, key string, _ bool, _ bool, msg amqp.Publishing) error {
			var r models.Remboursement
			assert.Equal(t, "application/json", msg.ContentType)
			assert.NoError(t, json.Unmarshal(msg.Body, &r))
			publishedCh <- published{key: key, body: r}
			return nil
		})

	created := make(chan models.Remboursement, 1)
	updated := make(chan models.Remboursement, 1)
	subscribe := func() (chan models.Remboursement, chan models.Remboursement, error) {
		return created, updated, nil
	}
	encode := func(_ context.Context, w io.Writer, r models.Remboursement) error {
		return json.NewEncoder(w).Encode(r)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- client.StartPublishRemboursements(ctx, subscribe, encode)
	}()

	created <- models.Remboursement{ID: "r-1", Statut: common.RemboursementStatutEnAttente}
	first := <-publishedCh
	assert.Equal(t, "remboursement.created", first.key)
	assert.Equal(t, "r-1", first.body.ID)

	updated <- models.Remboursement{ID: "r-1", Statut: common.RemboursementStatutPaye}
	second := <-publishedCh
	assert.Equal(t, "remboursement.paye", second.key)
	assert.Equal(t, common.RemboursementStatutPaye, second.body.Statut)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "remboursement.en_retard", rabbitmq.RoutingKey(models.Remboursement{Statut: common.RemboursementStatutEnRetard}))
	assert.Equal(t, "remboursement.annule", rabbitmq.RoutingKey(models.Remboursement{Statut: common.RemboursementStatutAnnule}))
}
