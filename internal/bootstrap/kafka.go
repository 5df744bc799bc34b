package bootstrap

import (
	"github.com/turtacn/EatTrue/internal/config"
	"github.com/turtacn/EatTrue/internal/infrastructure/messaging/kafka"
)

// ProducerConfig maps the kafka section onto the producer configuration.
func ProducerConfig(k config.KafkaConfig) kafka.ProducerConfig {
	return kafka.ProducerConfig{
		Brokers:       k.Brokers,
		Acks:          k.Acks,
		MaxRetries:    k.MaxRetries,
		BatchTimeout:  k.BatchTimeout,
		Async:         k.Async,
		SASLMechanism: k.SASLMechanism,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
	}
}

// ConsumerConfig maps the kafka section onto the scan-event worker's consumer
// configuration. Failed events go to the topic's dead-letter topic.
func ConsumerConfig(k config.KafkaConfig) kafka.ConsumerConfig {
	return kafka.ConsumerConfig{
		Brokers:         k.Brokers,
		GroupID:         k.ConsumerGroup,
		Topics:          []string{k.Topic},
		AutoOffsetReset: "earliest",
		SASLMechanism:   k.SASLMechanism,
		SASLUsername:    k.SASLUsername,
		SASLPassword:    k.SASLPassword,
		RetryConfig: kafka.RetryConfig{
			MaxRetries:      k.MaxRetries,
			DeadLetterTopic: kafka.DeadLetterTopic(k.Topic),
		},
	}
}

//Personal.AI order the ending
