package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/turtacn/EatTrue/pkg/errors"
)

func TestDeadLetterTopic(t *testing.T) {
	assert.Equal(t, "eattrue.scan.completed.dlq", DeadLetterTopic(TopicScanCompleted))
}

func TestEventEnvelope_RoundTripThroughMessage(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	payload := ScanCompletedPayload{
		ScanID:       "scan-1",
		UserID:       "alice",
		Product:      "Sample Soda",
		Source:       "barcode",
		OverallScore: 69,
		Trend:        "Stable",
		Warnings:     []string{},
		ScannedAt:    at,
	}

	env, err := NewEventEnvelope(EventTypeScanCompleted, "test", payload, at)
	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, SchemaVersion, env.SchemaVersion)
	env.TraceID = "req-9"

	msg, err := env.ToMessage(TopicScanCompleted, []byte("scan-1"))
	require.NoError(t, err)
	assert.Equal(t, "scan-1", string(msg.Key))
	assert.Equal(t, EventTypeScanCompleted, msg.Headers["event_type"])
	assert.Equal(t, "req-9", msg.Headers["trace_id"])
	assert.Equal(t, at, msg.Timestamp)

	decoded, err := MessageToEventEnvelope(msg)
	require.NoError(t, err)
	var got ScanCompletedPayload
	require.NoError(t, decoded.DecodePayload(&got))
	assert.Equal(t, payload, got)
}

func TestScanCompletedPayload_WireNames(t *testing.T) {
	data, err := json.Marshal(ScanCompletedPayload{Warnings: []string{}})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, k := range []string{"scan_id", "user_id", "product", "source", "overall_score", "trend", "warnings", "scanned_at"} {
		assert.Contains(t, fields, k)
	}
	assert.Len(t, fields, 8)
}

func TestMessageToEventEnvelope_Errors(t *testing.T) {
	_, err := MessageToEventEnvelope(&Message{})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))

	_, err = MessageToEventEnvelope(&Message{Value: []byte("{not json")})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSerialization))
}

func TestDecodePayload_Empty(t *testing.T) {
	env := &EventEnvelope{Payload: json.RawMessage("null")}
	var p ScanCompletedPayload
	assert.NoError(t, env.DecodePayload(&p))
	assert.Empty(t, p.ScanID)
}

//Personal.AI order the ending
