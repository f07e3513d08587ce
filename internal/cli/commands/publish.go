package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/powerjson/powerjson/pkg/config"
	"github.com/powerjson/powerjson/pkg/convert"
	"github.com/powerjson/powerjson/pkg/publish"
	"github.com/powerjson/powerjson/pkg/webhook"
)

// PublishOptions holds command-line options for the publish command.
type PublishOptions struct {
	Config string
	Raw    bool
	Quiet  bool
}

// NewPublishCommand creates the publish command.
func NewPublishCommand() *cobra.Command {
	opts := &PublishOptions{}

	cmd := &cobra.Command{
		Use:   "publish <converter> [file]",
		Short: "Convert a report and deliver the records",
		Long: `Convert the output of a power-device utility and deliver the resulting
records to the MQTT broker and/or webhooks from the configuration file.

Reads from the given capture file, or from stdin when no file is given.

Exit codes:
  0 - All deliveries succeeded
  1 - One or more deliveries failed
  2 - Configuration or runtime error

Example:
  upower -d | powerjson publish --config powerjson.yaml upower`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Configuration file with mqtt/webhook settings (required)")
	cmd.Flags().BoolVarP(&opts.Raw, "raw", "r", false, "Deliver raw records, skipping normalization")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress the compatibility advisory")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runPublish(cmd *cobra.Command, args []string, opts *PublishOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.MQTT == nil && len(cfg.Webhooks) == 0 {
		return fmt.Errorf("config %s has neither an mqtt broker nor webhooks", opts.Config)
	}

	conv, err := convert.Get(args[0])
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}

	records, err := conv.Convert(data, convert.Options{
		Raw:   opts.Raw,
		Quiet: opts.Quiet,
		Advise: func(msg string) {
			log.Warn().Msg(msg)
		},
	})
	if err != nil {
		return fmt.Errorf("converting %s input: %w", conv.Name(), err)
	}

	failed := 0
	if cfg.MQTT != nil {
		if err := publishMQTT(records, cfg); err != nil {
			log.Error().Err(err).Msg("mqtt delivery failed")
			failed++
		} else {
			log.Info().Int("records", len(records)).Str("broker", cfg.MQTT.Broker).Msg("published to mqtt")
		}
	}

	failed += sendWebhooks(ctx, conv.Name(), records, cfg.Webhooks)

	if failed > 0 {
		ExitCode = 1
	}
	return nil
}

func publishMQTT(records []convert.Record, cfg *config.Config) error {
	pub, err := publish.NewMQTTPublisher(*cfg.MQTT)
	if err != nil {
		return err
	}
	defer pub.Close()

	return publish.PublishRecords(records, publish.PublishConfig{
		Prefix:   cfg.MQTT.TopicPrefix,
		Retained: cfg.MQTT.Retained,
	}, pub)
}

// sendWebhooks delivers the records to each configured webhook and returns
// the number of failed deliveries.
func sendWebhooks(ctx context.Context, converter string, records []convert.Record, webhooks []config.WebhookConfig) int {
	if len(webhooks) == 0 {
		return 0
	}

	client := webhook.NewClient()
	failed := 0

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, len(records) > 0) {
			continue
		}

		resp := client.Send(ctx, converter, records, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			log.Info().Str("webhook", name).Int("status", resp.StatusCode).Dur("duration", resp.Duration).Msg("webhook sent")
		} else {
			log.Error().Str("webhook", name).Err(resp.Error).Msg("webhook failed")
			failed++
		}
	}

	return failed
}

// shouldFireWebhook determines if a webhook should fire based on its
// trigger and whether the conversion produced records.
func shouldFireWebhook(trigger config.WebhookTrigger, hasRecords bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnRecords:
		return hasRecords
	default:
		// Default to on_records
		return hasRecords
	}
}
