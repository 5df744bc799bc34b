package scan

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/EatTrue/internal/domain/risk"
)

func TestBuilder_BuildAppendsHistory(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	b := NewBuilder(WithBuilderClock(clockwork.NewFakeClockAt(now)))

	analysis := &risk.AnalysisResult{OverallScore: 69}
	history := risk.History{{Date: now.Add(-time.Hour), OverallScore: 40}}

	r := b.Build(Input{
		ProductName: "Sample Soda",
		Source:      SourceBarcode,
		Tokens:      []string{"sugar", "e102"},
		BatchCode:   "2024-10-01",
		Analysis:    analysis,
	}, &history)

	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sample Soda", r.ProductName)
	assert.Equal(t, SourceBarcode, r.Source)
	assert.Equal(t, []string{"sugar", "e102"}, r.Ingredients)
	assert.Same(t, analysis, r.Analysis)
	assert.Equal(t, now, r.ScannedAt)

	require.Len(t, history, 2)
	assert.Equal(t, risk.HistoryEntry{Date: now, OverallScore: 69}, history[1])
}

func TestBuilder_Defaults(t *testing.T) {
	b := NewBuilder()

	r := b.Build(Input{}, nil)
	assert.Equal(t, SourceManual, r.Source)
	assert.Equal(t, "Manually Entered Product", r.ProductName)
	assert.Equal(t, UnknownBatchCode, r.BatchCode)
	assert.Equal(t, []string{}, r.Ingredients)
	assert.Equal(t, 100, r.Analysis.OverallScore)
	assert.False(t, r.ScannedAt.IsZero())
}

func TestBuilder_UniqueIDs(t *testing.T) {
	b := NewBuilder()
	var history risk.History

	first := b.Build(Input{Source: SourceImage}, &history)
	second := b.Build(Input{Source: SourceImage}, &history)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, history, 2)
	assert.Equal(t, "Scanned Product", first.ProductName)
}

//Personal.AI order the ending
