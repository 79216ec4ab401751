package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Morymirco/admin.zalama/common"
	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/Morymirco/admin.zalama/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const (
	testLengoCallbackExchange = "test_lengo_callback"
	testLengoCallbackQueue    = "test_zalama_lengo_callback_consumer"
	testRemboursementExchange = "test_zalama_remboursement"
	testEventsQueue           = "test_remboursement_events"
)

type RabbitMQTestSuite struct {
	TestSuite
	svc         *service.ZalamaService
	partner     *models.Partner
	rabbitmqUri string
	cancel      context.CancelFunc
}

func (suite *RabbitMQTestSuite) SetupSuite() {
	uri, ok := os.LookupEnv("RABBITMQ_URI")
	if !ok {
		suite.T().Skip("RABBITMQ_URI is not set")
	}
	suite.rabbitmqUri = uri

	svc, err := ZalamaTestServiceInit(&fakeGateway{payID: "LP-AMQP-1"})
	if err != nil {
		log.Fatalf("could not initialize test service: %v", err)
	}
	amqpClient, err := rabbitmq.DialAMQP(uri, rabbitmq.WithAmqpLogger(svc.Logger))
	if err != nil {
		log.Fatalf("could not connect to rabbitmq: %v", err)
	}
	client, err := rabbitmq.NewClient(amqpClient,
		rabbitmq.WithLogger(svc.Logger),
		rabbitmq.WithLengoCallbackExchange(testLengoCallbackExchange),
		rabbitmq.WithLengoCallbackQueueName(testLengoCallbackQueue),
		rabbitmq.WithRemboursementExchange(testRemboursementExchange),
	)
	if err != nil {
		log.Fatalf("could not create rabbitmq client: %v", err)
	}
	svc.RabbitMQClient = client
	suite.svc = svc

	partner, err := createPartner(svc, "Guinée Games")
	if err != nil {
		log.Fatalf("Error creating test partner: %v", err)
	}
	suite.partner = partner

	ctx, cancel := context.WithCancel(context.Background())
	suite.cancel = cancel
	go func() {
		err := client.StartPublishRemboursements(ctx, svc.SubscribeRemboursements, svc.EncodeRemboursementEvent)
		assert.ErrorIs(suite.T(), err, context.Canceled)
	}()
	go func() {
		err := client.ConsumeLengoCallbacks(ctx, svc)
		assert.ErrorIs(suite.T(), err, context.Canceled)
	}()
	assert.Eventually(suite.T(), func() bool {
		return svc.RemboursementPubSub.SubscriberCount(common.EventRemboursementStatut) == 1
	}, 5*time.Second, 10*time.Millisecond)
}

// declareTopology declares the exchanges and queues the client uses, so nothing
// published by the test is dropped while the client is still starting.
func (suite *RabbitMQTestSuite) declareTopology(ch *amqp.Channel) <-chan amqp.Delivery {
	for _, exchange := range []string{testLengoCallbackExchange, testRemboursementExchange} {
		assert.NoError(suite.T(), ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil))
	}
	_, err := ch.QueueDeclare(testLengoCallbackQueue, true, false, false, false, amqp.Table{"delivery-limit": 10})
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), ch.QueueBind(testLengoCallbackQueue, "lengo.callback.#", testLengoCallbackExchange, false, nil))

	q, err := ch.QueueDeclare(testEventsQueue, false, true, false, false, nil)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), ch.QueueBind(q.Name, "remboursement.paye", testRemboursementExchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	assert.NoError(suite.T(), err)
	return deliveries
}

func (suite *RabbitMQTestSuite) TestLengoCallbackRoundTrip() {
	conn, err := amqp.Dial(suite.rabbitmqUri)
	assert.NoError(suite.T(), err)
	defer conn.Close()

	ch, err := conn.Channel()
	assert.NoError(suite.T(), err)
	defer ch.Close()
	events := suite.declareTopology(ch)

	r, err := createRemboursement(suite.svc, suite.partner, 1500)
	assert.NoError(suite.T(), err)
	_, err = suite.svc.InitierPaiementLengo(context.Background(), service.Selector{IDs: []string{r.ID}}, "")
	assert.NoError(suite.T(), err)

	body, err := json.Marshal(&lengo.Callback{PayID: "LP-AMQP-1", Status: "SUCCESS", Client: "224621000000"})
	assert.NoError(suite.T(), err)
	err = ch.PublishWithContext(context.Background(), testLengoCallbackExchange, "lengo.callback.success", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	assert.NoError(suite.T(), err)

	select {
	case msg := <-events:
		event := service.RemboursementEvent{}
		assert.NoError(suite.T(), json.Unmarshal(msg.Body, &event))
		assert.Equal(suite.T(), "remboursement.paye", msg.RoutingKey)
		assert.Equal(suite.T(), r.ID, event.Remboursement.ID)
		assert.Equal(suite.T(), "224621000000", event.Remboursement.NumeroReception)
	case <-time.After(10 * time.Second):
		suite.T().Fatal("no remboursement.paye event published")
	}

	stored, err := findRemboursement(suite.svc, r.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.RemboursementStatutPaye, stored.Statut)
}

func (suite *RabbitMQTestSuite) TearDownSuite() {
	if suite.cancel == nil {
		return
	}
	suite.cancel()
	if err := suite.svc.RabbitMQClient.Close(); err != nil {
		fmt.Printf("Error closing rabbitmq client %s\n", err.Error())
	}
	clearTables(suite.svc)
}

func TestRabbitMQTestSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQTestSuite))
}
