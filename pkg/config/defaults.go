package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultOutputFormat   = "json"
	DefaultClientID       = "powerjson"
	DefaultTopicPrefix    = "power"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvOutputFormat = "POWERJSON_OUTPUT_FORMAT"
	EnvMQTTBroker   = "POWERJSON_MQTT_BROKER"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the
// config.
func (c *Config) applyEnvironmentOverrides() {
	if format := os.Getenv(EnvOutputFormat); format != "" {
		c.Output.Format = format
	}
	if broker := os.Getenv(EnvMQTTBroker); broker != "" {
		if c.MQTT == nil {
			c.MQTT = &MQTTConfig{}
		}
		c.MQTT.Broker = broker
	}
}
