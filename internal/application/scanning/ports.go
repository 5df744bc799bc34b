package scanning

import (
	"context"
	"time"

	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/domain/scan"
)

// EventPublisher announces completed scans.
type EventPublisher interface {
	PublishScanCompleted(ctx context.Context, userID string, res *scan.Result) error
}

// Metrics records scan outcomes.
type Metrics interface {
	ObserveScan(source string, res *risk.AnalysisResult, elapsed time.Duration)
	ObserveScanFailure(source, code string)
	ObservePublish(err error)
}

type nopPublisher struct{}

func (nopPublisher) PublishScanCompleted(context.Context, string, *scan.Result) error { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveScan(string, *risk.AnalysisResult, time.Duration) {}
func (nopMetrics) ObserveScanFailure(string, string)                       {}
func (nopMetrics) ObservePublish(error)                                    {}

//Personal.AI order the ending
