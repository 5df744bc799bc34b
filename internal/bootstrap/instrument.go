package bootstrap

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/prometheus"
)

// StoreObserver hands out the latency histogram of each store operation.
type StoreObserver interface {
	StoreHistogram(backend, operation string) prometheus.Histogram
}

type instrumentedStore struct {
	next     scan.Store
	backend  string
	observer StoreObserver
	clock    clockwork.Clock
}

// InstrumentStore wraps s so that each call reports its latency under the
// backend label. A nil clock means the wall clock.
func InstrumentStore(s scan.Store, backend string, observer StoreObserver, clock clockwork.Clock) scan.Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &instrumentedStore{next: s, backend: backend, observer: observer, clock: clock}
}

func (s *instrumentedStore) timer(op string) *prometheus.Timer {
	return prometheus.NewTimer(s.observer.StoreHistogram(s.backend, op), s.clock)
}

func (s *instrumentedStore) Load(ctx context.Context, userID string) (risk.History, error) {
	defer s.timer("load_history").ObserveDuration()
	return s.next.Load(ctx, userID)
}

func (s *instrumentedStore) Append(ctx context.Context, userID string, entry risk.HistoryEntry) error {
	defer s.timer("append_history").ObserveDuration()
	return s.next.Append(ctx, userID, entry)
}

func (s *instrumentedStore) Get(ctx context.Context, userID string) (risk.Profile, bool, error) {
	defer s.timer("get_profile").ObserveDuration()
	return s.next.Get(ctx, userID)
}

func (s *instrumentedStore) Save(ctx context.Context, userID string, p risk.Profile) error {
	defer s.timer("save_profile").ObserveDuration()
	return s.next.Save(ctx, userID, p)
}

func (s *instrumentedStore) Ping(ctx context.Context) error { return s.next.Ping(ctx) }

func (s *instrumentedStore) Close() error { return s.next.Close() }

//Personal.AI order the ending
