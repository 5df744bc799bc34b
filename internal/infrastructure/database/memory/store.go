// Package memory keeps profiles and scan history in process memory. It backs
// the CLI and single-node deployments without a database.
package memory

import (
	"context"
	"sync"

	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/domain/scan"
)

// Store implements scan.Store.
type Store struct {
	mu         sync.RWMutex
	history    map[string]risk.History // userID -> history
	profiles   map[string]risk.Profile // userID -> profile
	maxEntries int
}

var _ scan.Store = (*Store)(nil)

// NewStore returns an empty Store keeping at most maxEntries history entries
// per user. maxEntries ≤ 0 keeps everything.
func NewStore(maxEntries int) *Store {
	return &Store{
		history:    map[string]risk.History{},
		profiles:   map[string]risk.Profile{},
		maxEntries: maxEntries,
	}
}

// Load returns a copy of the user's history.
func (s *Store) Load(_ context.Context, userID string) (risk.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.history[userID]
	out := make(risk.History, len(h))
	copy(out, h)
	return out, nil
}

// Append records entry and drops the oldest entries beyond the cap.
func (s *Store) Append(_ context.Context, userID string, entry risk.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := append(s.history[userID], entry)
	if s.maxEntries > 0 && len(h) > s.maxEntries {
		h = append(risk.History(nil), h[len(h)-s.maxEntries:]...)
	}
	s.history[userID] = h
	return nil
}

// Get returns the stored profile.
func (s *Store) Get(_ context.Context, userID string) (risk.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return risk.Profile{}, false, nil
	}
	p.DietaryPreferences = append([]string{}, p.DietaryPreferences...)
	return p, true, nil
}

// Save replaces the stored profile.
func (s *Store) Save(_ context.Context, userID string, profile risk.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile.DietaryPreferences = append([]string{}, profile.DietaryPreferences...)
	s.profiles[userID] = profile
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

//Personal.AI order the ending
