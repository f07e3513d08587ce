package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if cfg.MQTT != nil {
		if err := validateMQTT(cfg.MQTT); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateOutput(out *OutputConfig) error {
	if out.Format == "" {
		out.Format = DefaultOutputFormat
	}
	switch out.Format {
	case "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid format %q (must be json or yaml)", out.Format)
	}
}

func validateMQTT(m *MQTTConfig) error {
	if m.Broker == "" {
		return errors.New("broker is required")
	}

	u, err := url.Parse(m.Broker)
	if err != nil {
		return fmt.Errorf("invalid broker: %w", err)
	}
	switch u.Scheme {
	case "tcp", "ssl", "ws", "wss":
		// Valid
	default:
		return fmt.Errorf("broker scheme must be tcp, ssl, ws or wss, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("broker must have a host")
	}

	if m.ClientID == "" {
		m.ClientID = DefaultClientID
	}
	if m.TopicPrefix == "" {
		m.TopicPrefix = DefaultTopicPrefix
	}
	if m.QOS > 2 {
		return fmt.Errorf("qos must be 0, 1 or 2, got %d", m.QOS)
	}

	m.Password = expandEnvVar(m.Password)

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnRecords, WebhookTriggerAlways, WebhookTriggerNever:
			// Valid
		default:
			return fmt.Errorf("invalid trigger %q (must be on_records, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnRecords
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}

	return s
}
