package service

import (
	"github.com/shopspring/decimal"
)

type Config struct {
	DatabaseUri                   string          `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns              int             `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns          int             `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime       int             `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	SentryDSN                     string          `envconfig:"SENTRY_DSN"`
	DatadogAgentUrl               string          `envconfig:"DATADOG_AGENT_URL"`
	SentryTracesSampleRate        float64         `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath                   string          `envconfig:"LOG_FILE_PATH"`
	JWTSecret                     []byte          `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessTokenExpiry          int             `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"` // in seconds, default 2 days
	AdminToken                    string          `envconfig:"ADMIN_TOKEN"`
	Host                          string          `envconfig:"HOST" default:"localhost:3000"`
	Port                          int             `envconfig:"PORT" default:"3000"`
	DefaultRateLimit              int             `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit               int             `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit                int             `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus              bool            `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort                int             `envconfig:"PROMETHEUS_PORT" default:"9092"`
	WebhookUrl                    string          `envconfig:"WEBHOOK_URL"`
	WebhookSecret                 string          `envconfig:"WEBHOOK_SECRET"`
	FraisServiceTaux              decimal.Decimal `envconfig:"FRAIS_SERVICE_TAUX" default:"0.065"`
	RemboursementDelaiJours       int             `envconfig:"REMBOURSEMENT_DELAI_JOURS" default:"30"`
	LengoCallbackSecret           string          `envconfig:"LENGO_CALLBACK_SECRET"`
	RabbitMQUri                   string          `envconfig:"RABBITMQ_URI"`
	RabbitMQRemboursementExchange string          `envconfig:"RABBITMQ_REMBOURSEMENT_EXCHANGE" default:"zalama_remboursement"`
	RabbitMQLengoCallbackExchange string          `envconfig:"RABBITMQ_LENGO_CALLBACK_EXCHANGE" default:"lengo_callback"`
	RabbitMQLengoCallbackQueue    string          `envconfig:"RABBITMQ_LENGO_CALLBACK_QUEUE_NAME" default:"zalama_lengo_callback_consumer"`
}
