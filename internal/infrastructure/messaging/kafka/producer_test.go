package kafka

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/EatTrue/pkg/errors"
)

type mockKafkaWriter struct {
	writeFunc func(ctx context.Context, msgs ...kafka.Message) error
	closeFunc func() error
}

func (m *mockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.writeFunc != nil {
		return m.writeFunc(ctx, msgs...)
	}
	return nil
}

func (m *mockKafkaWriter) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockKafkaWriter) Stats() kafka.WriterStats { return kafka.WriterStats{} }

func newTestProducer(w WriterInterface) *Producer {
	return newProducerWithWriter(w, ProducerConfig{Brokers: []string{"localhost:9092"}}, logging.NewNopLogger())
}

func newTestMessage(topic, key, value string) *Message {
	return &Message{Topic: topic, Key: []byte(key), Value: []byte(value)}
}

func TestValidateProducerConfig(t *testing.T) {
	cases := []struct {
		name  string
		cfg   ProducerConfig
		valid bool
	}{
		{"valid", ProducerConfig{Brokers: []string{"b:9092"}}, true},
		{"acks all", ProducerConfig{Brokers: []string{"b:9092"}, Acks: AcksAll}, true},
		{"no brokers", ProducerConfig{}, false},
		{"negative retries", ProducerConfig{Brokers: []string{"b:9092"}, MaxRetries: -1}, false},
		{"bad acks", ProducerConfig{Brokers: []string{"b:9092"}, Acks: "2"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProducerConfig(tc.cfg)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
			}
		})
	}
}

func TestNewProducer_UnsupportedSASL(t *testing.T) {
	_, err := NewProducer(ProducerConfig{Brokers: []string{"b:9092"}, SASLMechanism: "GSSAPI"}, logging.NewNopLogger())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
}

func TestNewProducer_PlainSASL(t *testing.T) {
	p, err := NewProducer(ProducerConfig{
		Brokers:       []string{"b:9092"},
		SASLMechanism: SASLPlain,
		SASLUsername:  "u",
		SASLPassword:  "p",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, 4, w.MaxAttempts)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
}

func TestPublish_Success(t *testing.T) {
	var captured []kafka.Message
	p := newTestProducer(&mockKafkaWriter{
		writeFunc: func(ctx context.Context, msgs ...kafka.Message) error {
			captured = msgs
			return nil
		},
	})

	msg := newTestMessage("scans", "k", "v")
	msg.Headers = map[string]string{"event_type": "scan.completed"}
	require.NoError(t, p.Publish(context.Background(), msg))

	require.Len(t, captured, 1)
	assert.Equal(t, "scans", captured[0].Topic)
	assert.Equal(t, "k", string(captured[0].Key))
	assert.Equal(t, "v", string(captured[0].Value))
	assert.Equal(t, []kafka.Header{{Key: "event_type", Value: []byte("scan.completed")}}, captured[0].Headers)
	assert.False(t, captured[0].Time.IsZero())

	m := p.GetMetrics()
	assert.Equal(t, int64(1), m.MessagesSent.Load())
	assert.Equal(t, int64(1), m.BytesSent.Load())
}

func TestPublish_Validation(t *testing.T) {
	p := newTestProducer(&mockKafkaWriter{})

	assert.Error(t, p.Publish(context.Background(), newTestMessage("", "k", "v")))
	assert.Error(t, p.Publish(context.Background(), newTestMessage("t", "k", "")))
	big := newTestMessage("t", "k", strings.Repeat("x", 1024*1024+1))
	assert.True(t, apperrors.IsCode(p.Publish(context.Background(), big), apperrors.ErrCodeValidation))
}

func TestPublish_Failure(t *testing.T) {
	p := newTestProducer(&mockKafkaWriter{
		writeFunc: func(ctx context.Context, msgs ...kafka.Message) error {
			return errors.New("leader not available")
		},
	})

	err := p.Publish(context.Background(), newTestMessage("scans", "k", "v"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMessagingError))
	assert.Equal(t, int64(1), p.GetMetrics().MessagesFailed.Load())
}

func TestClose_Idempotent(t *testing.T) {
	calls := 0
	p := newTestProducer(&mockKafkaWriter{
		closeFunc: func() error {
			calls++
			return nil
		},
	})

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, p.Publish(context.Background(), newTestMessage("t", "k", "v")), ErrProducerClosed)
}

func TestRequiredAcksAndCompression(t *testing.T) {
	assert.Equal(t, kafka.RequireNone, requiredAcks(AcksNone))
	assert.Equal(t, kafka.RequireOne, requiredAcks(AcksLeader))
	assert.Equal(t, kafka.RequireOne, requiredAcks(""))
	assert.Equal(t, kafka.RequireAll, requiredAcks(AcksAll))
	assert.Equal(t, kafka.Snappy, compression("snappy"))
	assert.Equal(t, kafka.Compression(0), compression(""))
}

//Personal.AI order the ending
