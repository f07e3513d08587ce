// Package config provides configuration loading and validation for powerjson.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Output   OutputConfig    `yaml:"output,omitempty"`
	MQTT     *MQTTConfig     `yaml:"mqtt,omitempty"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// OutputConfig sets the default rendering of converted records.
type OutputConfig struct {
	// Format is the serialization format: json or yaml.
	Format string `yaml:"format,omitempty"`

	// Pretty enables indented output.
	Pretty bool `yaml:"pretty,omitempty"`
}

// MQTTConfig defines the broker used by the publish command.
type MQTTConfig struct {
	// Broker is the broker URL (tcp://, ssl://, ws:// or wss://).
	Broker string `yaml:"broker"`

	// ClientID identifies this client to the broker.
	// Defaults to "powerjson".
	ClientID string `yaml:"client_id,omitempty"`

	// TopicPrefix is prepended to every published topic.
	// Defaults to "power".
	TopicPrefix string `yaml:"topic_prefix,omitempty"`

	// Username and Password are optional broker credentials.
	// Password supports ${VAR} environment expansion.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// QOS is the MQTT quality of service level (0, 1 or 2).
	QOS byte `yaml:"qos,omitempty"`

	// Retained marks published messages as retained.
	Retained bool `yaml:"retained,omitempty"`

	// TLSCACert is an optional CA certificate file to trust for ssl://
	// brokers.
	TLSCACert string `yaml:"tls_ca_cert,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnRecords fires only when the conversion produced at
	// least one record (default).
	WebhookTriggerOnRecords WebhookTrigger = "on_records"
	// WebhookTriggerAlways fires after every conversion.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines an HTTP endpoint for delivering converted records.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	// Supports ${VAR} environment expansion.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_records" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
