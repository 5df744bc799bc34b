package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/EatTrue/pkg/errors"
)

// Topic and event names.
const (
	TopicScanCompleted     = "eattrue.scan.completed"
	EventTypeScanCompleted = "scan.completed"
	DeadLetterSuffix       = ".dlq"
	SchemaVersion          = "v1"
)

// DeadLetterTopic returns the dead-letter topic paired with topic.
func DeadLetterTopic(topic string) string {
	return topic + DeadLetterSuffix
}

// EventEnvelope standardizes event messages.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	TraceID       string            `json:"trace_id,omitempty"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// ScanCompletedPayload is published once per finished scan.
type ScanCompletedPayload struct {
	ScanID       string    `json:"scan_id"`
	UserID       string    `json:"user_id"`
	Product      string    `json:"product"`
	Source       string    `json:"source"`
	OverallScore int       `json:"overall_score"`
	Trend        string    `json:"trend"`
	Warnings     []string  `json:"warnings"`
	ScannedAt    time.Time `json:"scanned_at"`
}

// NewEventEnvelope marshals payload into a fresh envelope stamped at.
func NewEventEnvelope(eventType, source string, payload interface{}, at time.Time) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     at.UTC(),
		SchemaVersion: SchemaVersion,
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the payload into target. An absent payload
// leaves target untouched.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode payload").WithDetail("event=" + e.EventID)
	}
	return nil
}

// ToMessage wraps the envelope in a Message for topic, keyed by key.
func (e *EventEnvelope) ToMessage(topic string, key []byte) (*Message, error) {
	val, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal envelope")
	}
	headers := map[string]string{
		"event_type":     e.EventType,
		"source_service": e.Source,
		"schema_version": e.SchemaVersion,
	}
	if e.TraceID != "" {
		headers["trace_id"] = e.TraceID
	}
	return &Message{
		Topic:     topic,
		Key:       key,
		Value:     val,
		Headers:   headers,
		Timestamp: e.Timestamp,
	}, nil
}

// MessageToEventEnvelope decodes a consumed message.
func MessageToEventEnvelope(msg *Message) (*EventEnvelope, error) {
	if len(msg.Value) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "empty message value")
	}
	var env EventEnvelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal envelope")
	}
	return &env, nil
}

//Personal.AI order the ending
