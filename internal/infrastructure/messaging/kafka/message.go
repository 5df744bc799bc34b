// Package kafka publishes and consumes EatTrue scan events through
// segmentio/kafka-go.
package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/turtacn/EatTrue/pkg/errors"
)

// Message is the transport-neutral form of a Kafka record.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// MessageHandler processes one consumed message.
type MessageHandler func(ctx context.Context, msg *Message) error

// SASL mechanisms accepted by ProducerConfig and ConsumerConfig.
const (
	SASLPlain       = "PLAIN"
	SASLScramSHA256 = "SCRAM-SHA-256"
	SASLScramSHA512 = "SCRAM-SHA-512"
)

func saslMechanism(name, username, password string) (sasl.Mechanism, error) {
	switch name {
	case "":
		return nil, nil
	case SASLPlain:
		return plain.Mechanism{Username: username, Password: password}, nil
	case SASLScramSHA256:
		m, err := scram.Mechanism(scram.SHA256, username, password)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMessagingError, "failed to create SASL mechanism")
		}
		return m, nil
	case SASLScramSHA512:
		m, err := scram.Mechanism(scram.SHA512, username, password)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMessagingError, "failed to create SASL mechanism")
		}
		return m, nil
	default:
		return nil, errors.New(errors.ErrCodeValidation, "unsupported SASL mechanism").WithDetail("mechanism=" + name)
	}
}

//Personal.AI order the ending
