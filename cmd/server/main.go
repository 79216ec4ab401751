package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/Morymirco/admin.zalama/db"
	"github.com/Morymirco/admin.zalama/db/migrations"
	"github.com/Morymirco/admin.zalama/docs"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/Morymirco/admin.zalama/lib"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/Morymirco/admin.zalama/lib/tokens"
	"github.com/Morymirco/admin.zalama/lib/transport"
	"github.com/Morymirco/admin.zalama/notify"
	"github.com/Morymirco/admin.zalama/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/uptrace/bun/migrate"
	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// @title        ZaLaMa admin
// @version      0.1.0
// @description  Reimbursement lifecycle of salary advances and Lengo Pay reconciliation.

// @BasePath  /

// @securitydefinitions.oauth2.password  OAuth2Password
// @tokenUrl                             /auth
// @schemes                              https http
func main() {
	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := lib.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStartup()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	group, err := migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}
	if !group.IsZero() {
		logger.Infof("Migrated database to %s", group)
	}

	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	lengoConfig, err := lengo.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading Lengo Pay config: %v", err)
	}
	var lengoClient lengo.Gateway
	if lengoConfig.Enabled() {
		lengoClient = lengo.NewClient(lengoConfig)
	} else {
		logger.Warn("LENGO_LICENSE_KEY or LENGO_SITE_ID missing, Lengo Pay payments are disabled")
	}
	if c.LengoCallbackSecret == "" {
		logger.Warn("LENGO_CALLBACK_SECRET is empty, Lengo Pay callbacks are not authenticated")
	}

	notifyConfig, err := notify.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading notification config: %v", err)
	}

	// Without RABBITMQ_URI no rabbitmq features are available
	var rabbitmqClient rabbitmq.Client
	if c.RabbitMQUri != "" {
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAmqpLogger(logger))
		if err != nil {
			logger.Fatal(err)
		}

		rabbitmqClient, err = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithRemboursementExchange(c.RabbitMQRemboursementExchange),
			rabbitmq.WithLengoCallbackExchange(c.RabbitMQLengoCallbackExchange),
			rabbitmq.WithLengoCallbackQueueName(c.RabbitMQLengoCallbackQueue),
		)
		if err != nil {
			logger.Fatal(err)
		}

		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
	}

	svc := &service.ZalamaService{
		Config:              c,
		DB:                  dbConn,
		Logger:              logger,
		RemboursementPubSub: service.NewPubsub(),
		RabbitMQClient:      rabbitmqClient,
		LengoClient:         lengoClient,
		Notifier:            notify.New(notifyConfig),
	}

	e := transport.InitEcho(c, logger)
	// if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("admin.zalama")))
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for the payment endpoints
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	secured := e.Group("", tokens.Middleware(c.JWTSecret, c.AdminToken), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret, c.AdminToken), strictRateLimitMiddleware, logMw)

	transport.RegisterEndpoints(svc, e, secured, securedWithStrictRateLimit, logMw)

	// Swagger docs
	docs.SwaggerInfo.Host = c.Host
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var backgroundWg sync.WaitGroup
	backGroundCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if svc.Config.WebhookUrl != "" {
		backgroundWg.Add(1)
		go func() {
			svc.StartWebhookSubscription(backGroundCtx, svc.Config.WebhookUrl)
			svc.Logger.Info("Webhook routine done")
			backgroundWg.Done()
		}()
	}

	if svc.RabbitMQClient != nil {
		backgroundWg.Add(1)
		go func() {
			err := svc.RabbitMQClient.StartPublishRemboursements(backGroundCtx,
				svc.SubscribeRemboursements,
				svc.EncodeRemboursementEvent,
			)
			if err != nil && err != context.Canceled {
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}
			svc.Logger.Info("Rabbit remboursement publisher done")
			backgroundWg.Done()
		}()

		backgroundWg.Add(1)
		go func() {
			err := svc.RabbitMQClient.ConsumeLengoCallbacks(backGroundCtx, svc)
			if err != nil && err != context.Canceled {
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}
			svc.Logger.Info("Rabbit lengo callback consumer done")
			backgroundWg.Done()
		}()
	}

	var echoPrometheus *echo.Echo
	if svc.Config.EnablePrometheus {
		echoPrometheus = transport.StartPrometheusEcho(logger, c, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	if echoPrometheus != nil {
		if err := echoPrometheus.Shutdown(ctx); err != nil {
			e.Logger.Fatal(err)
		}
	}
	// Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("ZaLaMa admin exiting gracefully. Goodbye.")
}
