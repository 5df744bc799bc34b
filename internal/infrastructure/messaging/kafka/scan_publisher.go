package kafka

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

// MessagePublisher is the subset of Producer used by ScanEventPublisher.
type MessagePublisher interface {
	Publish(ctx context.Context, msg *Message) error
}

// ScanEventPublisher turns scan results into scan.completed events.
type ScanEventPublisher struct {
	producer MessagePublisher
	topic    string
	source   string
	clock    clockwork.Clock
	logger   logging.Logger
}

// PublisherOption configures a ScanEventPublisher.
type PublisherOption func(*ScanEventPublisher)

// WithPublisherClock overrides the envelope timestamp clock.
func WithPublisherClock(c clockwork.Clock) PublisherOption {
	return func(p *ScanEventPublisher) { p.clock = c }
}

// WithSource sets the envelope source field.
func WithSource(source string) PublisherOption {
	return func(p *ScanEventPublisher) { p.source = source }
}

// NewScanEventPublisher publishes to topic, or TopicScanCompleted when empty.
func NewScanEventPublisher(producer MessagePublisher, topic string, logger logging.Logger, opts ...PublisherOption) *ScanEventPublisher {
	if topic == "" {
		topic = TopicScanCompleted
	}
	p := &ScanEventPublisher{
		producer: producer,
		topic:    topic,
		source:   "eattrue-apiserver",
		clock:    clockwork.NewRealClock(),
		logger:   logger,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// PublishScanCompleted publishes one event keyed by the scan ID.
func (p *ScanEventPublisher) PublishScanCompleted(ctx context.Context, userID string, res *scan.Result) error {
	payload := ScanCompletedPayload{
		ScanID:       res.ID,
		UserID:       userID,
		Product:      res.ProductName,
		Source:       string(res.Source),
		OverallScore: res.Analysis.OverallScore,
		Trend:        string(res.Analysis.Trend),
		Warnings:     res.Analysis.Warnings,
		ScannedAt:    res.ScannedAt,
	}
	if payload.Warnings == nil {
		payload.Warnings = []string{}
	}

	env, err := NewEventEnvelope(EventTypeScanCompleted, p.source, payload, p.clock.Now())
	if err != nil {
		return err
	}
	env.TraceID = logging.RequestIDFromContext(ctx)

	msg, err := env.ToMessage(p.topic, []byte(res.ID))
	if err != nil {
		return err
	}
	if err := p.producer.Publish(ctx, msg); err != nil {
		return err
	}

	p.logger.Debug("Scan event published",
		logging.String("scan_id", res.ID),
		logging.String("topic", p.topic))
	return nil
}

// ScanCompletedHandler adapts fn into a MessageHandler that decodes
// scan.completed envelopes. Other event types are skipped.
func ScanCompletedHandler(fn func(ctx context.Context, payload ScanCompletedPayload) error) MessageHandler {
	return func(ctx context.Context, msg *Message) error {
		env, err := MessageToEventEnvelope(msg)
		if err != nil {
			return err
		}
		if env.EventType != EventTypeScanCompleted {
			return nil
		}
		var payload ScanCompletedPayload
		if err := env.DecodePayload(&payload); err != nil {
			return err
		}
		return fn(ctx, payload)
	}
}

//Personal.AI order the ending
