package notify

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	NimbaSmsUrl    string        `envconfig:"NIMBA_SMS_URL" default:"https://api.nimbasms.com"`
	NimbaSmsSID    string        `envconfig:"NIMBA_SMS_SID"`
	NimbaSmsSecret string        `envconfig:"NIMBA_SMS_SECRET"`
	NimbaSmsSender string        `envconfig:"NIMBA_SMS_SENDER" default:"ZaLaMa"`
	ResendApiUrl   string        `envconfig:"RESEND_API_URL" default:"https://api.resend.com"`
	ResendApiKey   string        `envconfig:"RESEND_API_KEY"`
	EmailFrom      string        `envconfig:"EMAIL_FROM"`
	Timeout        time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// New returns a notifier sending through every provider that has credentials.
func New(c *Config) Notifier {
	httpClient := newHTTPClient(c.Timeout)
	multi := Multi{}
	if c.NimbaSmsSID != "" && c.NimbaSmsSecret != "" {
		multi = append(multi, NewSMSNotifier(c, httpClient))
	}
	if c.ResendApiKey != "" && c.EmailFrom != "" {
		multi = append(multi, NewEmailNotifier(c, httpClient))
	}
	return multi
}
