package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/fbrdigital/invoice-relay/internal/fbr"
)

type Configuration struct {
	Server  ServerConfig  `validate:"required"`
	Gateway GatewayConfig `validate:"required"`
	Metrics MetricsConfig
	Portal  PortalConfig
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type GatewayConfig struct {
	URL                string `validate:"required,url"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds" validate:"required,min=1"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

type MetricsConfig struct {
	Enabled bool
}

// PortalConfig configures the form-facing portal backend.
type PortalConfig struct {
	Address      string
	RelayURL     string `mapstructure:"relay_url"`
	ReferenceCSV string `mapstructure:"reference_csv"`
}

// New loads configuration from an optional config.yaml plus FBRRELAY_*
// environment overrides.
func New() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("FBRRELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("gateway.url", fbr.SandboxURL)
	v.SetDefault("gateway.timeout_seconds", 30)
	v.SetDefault("gateway.insecure_skip_verify", false)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("portal.address", ":8081")
	v.SetDefault("portal.relay_url", "http://localhost:8080")
	v.SetDefault("portal.reference_csv", "REFERENCES - REFERENCES.csv")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}
