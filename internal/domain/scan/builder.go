package scan

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/turtacn/EatTrue/internal/domain/risk"
)

// Input is everything a scan result is assembled from.
type Input struct {
	ProductName  string
	Source       Source
	Tokens       []string
	BatchCode    string
	Analysis     *risk.AnalysisResult
	Alternatives []Alternative
}

// Result is one completed scan as handed back to callers.
type Result struct {
	ID           string               `json:"id"`
	ProductName  string               `json:"product_name"`
	Source       Source               `json:"source"`
	Ingredients  []string             `json:"ingredients"`
	Analysis     *risk.AnalysisResult `json:"analysis"`
	BatchCode    string               `json:"batch_code"`
	Alternatives []Alternative        `json:"alternatives,omitempty"`
	ScannedAt    time.Time            `json:"scanned_at"`
}

// HistoryEntry returns the history tuple recorded for r.
func (r *Result) HistoryEntry() risk.HistoryEntry {
	return risk.HistoryEntry{Date: r.ScannedAt, OverallScore: r.Analysis.OverallScore}
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderClock sets the clock used for scan timestamps.
func WithBuilderClock(c clockwork.Clock) BuilderOption {
	return func(b *Builder) { b.clock = c }
}

// Builder assembles Results.
type Builder struct {
	clock clockwork.Clock
}

// NewBuilder returns a Builder on the real clock unless overridden.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build packages in as a Result and appends {now, overall score} to history.
// The append happens on every call; callers keep only what they need.
// A nil Analysis is treated as a perfect result.
func (b *Builder) Build(in Input, history *risk.History) *Result {
	analysis := in.Analysis
	if analysis == nil {
		analysis = risk.PerfectResult()
	}
	source := in.Source
	if !source.IsValid() {
		source = SourceManual
	}
	name := in.ProductName
	if name == "" {
		name = source.DefaultProductName()
	}
	batch := in.BatchCode
	if batch == "" {
		batch = UnknownBatchCode
	}
	tokens := in.Tokens
	if tokens == nil {
		tokens = []string{}
	}

	r := &Result{
		ID:           uuid.NewString(),
		ProductName:  name,
		Source:       source,
		Ingredients:  tokens,
		Analysis:     analysis,
		BatchCode:    batch,
		Alternatives: in.Alternatives,
		ScannedAt:    b.clock.Now().UTC(),
	}
	if history != nil {
		history.Append(r.HistoryEntry())
	}
	return r
}

//Personal.AI order the ending
