package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool lets the publisher reuse encoding buffers instead of allocating
// one per event.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"

	lengoCallbackRoutingKey = "lengo.callback.#"
	createdRoutingKey       = "remboursement.created"
)

var ErrDisconnected = errors.New("disconnected from rabbitmq")

type (
	SubscribeToRemboursementsFunc = func() (created chan models.Remboursement, updated chan models.Remboursement, err error)
	EncodeRemboursementFunc       = func(ctx context.Context, w io.Writer, r models.Remboursement) error
)

type Client interface {
	ConsumeLengoCallbacks(context.Context, CallbackReconciler) error
	StartPublishRemboursements(context.Context, SubscribeToRemboursementsFunc, EncodeRemboursementFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

// CallbackReconciler applies a Lengo Pay callback to the reimbursements it references.
type CallbackReconciler interface {
	HandleLengoCallback(ctx context.Context, cb *lengo.Callback) error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	lengoCallbackQueueName string
	lengoCallbackExchange  string
	remboursementExchange  string
}

type ClientOption = func(client *DefaultClient)

func WithLengoCallbackExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.lengoCallbackExchange = exchange
	}
}

func WithLengoCallbackQueueName(name string) ClientOption {
	return func(client *DefaultClient) {
		client.lengoCallbackQueueName = name
	}
}

func WithRemboursementExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.remboursementExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		lengoCallbackQueueName: "zalama_lengo_callback_consumer",
		lengoCallbackExchange:  "lengo_callback",
		remboursementExchange:  "zalama_remboursement",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

// ConsumeLengoCallbacks reads gateway callbacks relayed on the broker and
// hands them to the reconciler. Deliveries are never requeued: a callback
// that cannot be applied would otherwise loop and hammer the database.
func (client *DefaultClient) ConsumeLengoCallbacks(ctx context.Context, reconciler CallbackReconciler) error {
	deliveryChan, err := client.amqpClient.Listen(ctx, client.lengoCallbackExchange, lengoCallbackRoutingKey, client.lengoCallbackQueueName)
	if err != nil {
		return err
	}

	client.logger.Info("Starting lengo callback rabbitmq consumer")
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case delivery, ok := <-deliveryChan:
			if !ok {
				return ErrDisconnected
			}

			var cb lengo.Callback
			if err := json.Unmarshal(delivery.Body, &cb); err != nil {
				captureErr(client.logger, err)
				nack(client.logger, delivery)
				continue
			}

			if err := reconciler.HandleLengoCallback(ctx, &cb); err != nil {
				captureErr(client.logger, err)
				nack(client.logger, delivery)
				continue
			}

			client.logger.Debugf("Lengo callback consumed for pay_id %s", cb.PayID)
			if err := delivery.Ack(false); err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) StartPublishRemboursements(ctx context.Context, subscribeFunc SubscribeToRemboursementsFunc, payloadFunc EncodeRemboursementFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.remboursementExchange,
		// routes on remboursement.<statut>
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	created, updated, err := subscribeFunc()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case r := <-created:
			if err := client.publish(ctx, createdRoutingKey, r, payloadFunc); err != nil {
				captureErr(client.logger, err)
			}
		case r := <-updated:
			if err := client.publish(ctx, RoutingKey(r), r, payloadFunc); err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

// RoutingKey is the key a status change is published with, e.g. remboursement.paye.
func RoutingKey(r models.Remboursement) string {
	return "remboursement." + strings.ToLower(r.Statut)
}

func (client *DefaultClient) publish(ctx context.Context, key string, r models.Remboursement, payloadFunc EncodeRemboursementFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	if err := payloadFunc(ctx, payload, r); err != nil {
		return err
	}

	err := client.amqpClient.PublishWithContext(ctx,
		client.remboursementExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Published remboursement %s to rabbitmq with key %s", r.ID, key)

	return nil
}

func nack(logger *lecho.Logger, delivery amqp.Delivery) {
	if err := delivery.Nack(false, false); err != nil {
		captureErr(logger, err)
	}
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
