package lengo

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ApiUrl      string        `envconfig:"LENGO_API_URL" default:"https://portal.lengopay.com"`
	LicenseKey  string        `envconfig:"LENGO_LICENSE_KEY"`
	SiteID      string        `envconfig:"LENGO_SITE_ID"`
	Currency    string        `envconfig:"LENGO_CURRENCY" default:"GNF"`
	CallbackUrl string        `envconfig:"LENGO_CALLBACK_URL"`
	ReturnUrl   string        `envconfig:"LENGO_RETURN_URL"`
	Timeout     time.Duration `envconfig:"LENGO_TIMEOUT" default:"30s"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Enabled reports whether gateway-initiated payments can be made.
func (c *Config) Enabled() bool {
	return c.LicenseKey != "" && c.SiteID != ""
}
