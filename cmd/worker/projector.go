package main

import (
	"context"
	"strings"

	"github.com/turtacn/EatTrue/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

// scanObserver receives one call per consumed scan event.
type scanObserver interface {
	ObserveConsumedScan(trend string, overall int)
}

// scanProjector turns scan.completed events into score metrics and an audit
// log line. Malformed events fail so that the consumer retries and then
// dead-letters them.
type scanProjector struct {
	observer scanObserver
	logger   logging.Logger
}

func newScanProjector(observer scanObserver, logger logging.Logger) *scanProjector {
	return &scanProjector{observer: observer, logger: logger}
}

func (p *scanProjector) Handle(ctx context.Context, ev kafka.ScanCompletedPayload) error {
	if strings.TrimSpace(ev.ScanID) == "" || strings.TrimSpace(ev.UserID) == "" {
		return errors.New(errors.ErrCodeValidation, "scan event is missing scan_id or user_id")
	}

	p.observer.ObserveConsumedScan(ev.Trend, ev.OverallScore)

	log := p.logger.WithContext(ctx)
	log.Info("Scan event consumed",
		logging.String("scan_id", ev.ScanID),
		logging.String("user_id", ev.UserID),
		logging.String("product", ev.Product),
		logging.String("source", ev.Source),
		logging.Int("overall_score", ev.OverallScore),
		logging.String("trend", ev.Trend),
		logging.Time("scanned_at", ev.ScannedAt))
	if len(ev.Warnings) > 0 {
		log.Warn("Scan raised personalized warnings",
			logging.String("scan_id", ev.ScanID),
			logging.Strings("warnings", ev.Warnings))
	}
	return nil
}

//Personal.AI order the ending
