package scan

import (
	"context"

	"github.com/turtacn/EatTrue/internal/domain/risk"
)

// HistoryRepository persists per-user scan history, oldest entry first.
// Load returns an empty, non-nil History for a user with no scans.
type HistoryRepository interface {
	Load(ctx context.Context, userID string) (risk.History, error)
	Append(ctx context.Context, userID string, entry risk.HistoryEntry) error
}

// ProfileRepository persists per-user health profiles. Get reports found ==
// false for a user who never saved one.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (profile risk.Profile, found bool, err error)
	Save(ctx context.Context, userID string, profile risk.Profile) error
}

// Store is a backend that serves both repositories.
type Store interface {
	HistoryRepository
	ProfileRepository
	Ping(ctx context.Context) error
	Close() error
}

//Personal.AI order the ending
