package main

import (
	"context"
	"fmt"

	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/infrastructure/messaging/kafka"
)

// storeHealthAdapter checks the history/profile backend.
type storeHealthAdapter struct {
	backend string
	store   scan.Store
}

func (a *storeHealthAdapter) Name() string {
	return a.backend
}

func (a *storeHealthAdapter) Check(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// kafkaHealthAdapter reports ready while the broker lists the scan topic.
type kafkaHealthAdapter struct {
	topics *kafka.TopicManager
	topic  string
}

func (a *kafkaHealthAdapter) Name() string {
	return "kafka"
}

func (a *kafkaHealthAdapter) Check(ctx context.Context) error {
	ok, err := a.topics.TopicExists(ctx, a.topic)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("topic %s not found", a.topic)
	}
	return nil
}

//Personal.AI order the ending
