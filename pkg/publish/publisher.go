// Package publish delivers converted records to an MQTT broker.
package publish

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/powerjson/powerjson/pkg/convert"
)

// Message is a single MQTT publish request.
type Message struct {
	Topic    string
	Payload  string
	Retained bool
}

// Publisher is the minimal interface used to send MQTT messages. The real
// MQTT client and FakePublisher both implement it.
type Publisher interface {
	Publish(msg Message) error
	Close() error
}

// PublishConfig groups the MQTT routing parameters.
type PublishConfig struct {
	Prefix   string
	Retained bool
}

// StateMessage is the JSON payload for the combined state topic.
type StateMessage struct {
	Timestamp string `json:"timestamp"`
	Records   int    `json:"records"`
}

// PublishRecords publishes every record as a JSON payload on its own topic
// plus a combined state topic. It returns the first publish error
// encountered.
func PublishRecords(records []convert.Record, cfg PublishConfig, pub Publisher) error {
	for _, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshalling record: %w", err)
		}
		msg := Message{
			Topic:    fmt.Sprintf("%s/%s", cfg.Prefix, recordSlug(rec)),
			Payload:  string(payload),
			Retained: cfg.Retained,
		}
		if err := pub.Publish(msg); err != nil {
			return err
		}
	}

	return publishState(len(records), cfg, pub)
}

// StateTopic returns the MQTT topic used for the combined state message.
func StateTopic(prefix string) string {
	return prefix + "/state"
}

// recordSlug derives the topic segment for one record: the tail of the
// device path, or the lowercased record type for the daemon record.
func recordSlug(rec convert.Record) string {
	if name, ok := rec["device_name"].(string); ok && name != "" {
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		return name
	}
	if t, ok := rec["type"].(string); ok && t != "" {
		return strings.ToLower(t)
	}
	return "record"
}

// publishState marshals and publishes the combined state message.
func publishState(count int, cfg PublishConfig, pub Publisher) error {
	payload, err := json.Marshal(StateMessage{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Records:   count,
	})
	if err != nil {
		return fmt.Errorf("marshalling state: %w", err)
	}
	return pub.Publish(Message{
		Topic:    StateTopic(cfg.Prefix),
		Payload:  string(payload),
		Retained: cfg.Retained,
	})
}
