package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix namespaces every key.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) { s.prefix = prefix }
}

// WithMaxEntries caps each user's history list. Zero keeps everything.
func WithMaxEntries(n int) StoreOption {
	return func(s *Store) { s.maxEntries = n }
}

// WithHistoryTTL expires a user's history and profile after a period without
// writes. Zero disables expiry.
func WithHistoryTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// Store implements scan.Store. History lives in a list per user, one JSON
// entry per element, oldest at the head. Profiles are JSON strings.
type Store struct {
	client     *Client
	logger     logging.Logger
	prefix     string
	maxEntries int
	ttl        time.Duration
}

var _ scan.Store = (*Store)(nil)

// NewStore returns a Store over client.
func NewStore(client *Client, log logging.Logger, opts ...StoreOption) *Store {
	s := &Store{client: client, logger: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) historyKey(userID string) string { return s.prefix + "history:" + userID }
func (s *Store) profileKey(userID string) string { return s.prefix + "profile:" + userID }

// Load reads the full history list.
func (s *Store) Load(ctx context.Context, userID string) (risk.History, error) {
	rdb, err := s.client.Underlying()
	if err != nil {
		return nil, err
	}
	raw, err := rdb.LRange(ctx, s.historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to load history").WithDetail("user=" + userID)
	}

	h := make(risk.History, 0, len(raw))
	for _, item := range raw {
		var e risk.HistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "corrupt history entry").WithDetail("user=" + userID)
		}
		h = append(h, e)
	}
	return h, nil
}

// Append pushes entry, trims the list to the cap, and refreshes the TTL in
// one MULTI/EXEC.
func (s *Store) Append(ctx context.Context, userID string, entry risk.HistoryEntry) error {
	rdb, err := s.client.Underlying()
	if err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode history entry")
	}

	key := s.historyKey(userID)
	_, err = rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, string(data))
		if s.maxEntries > 0 {
			pipe.LTrim(ctx, key, int64(-s.maxEntries), -1)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to append history").WithDetail("user=" + userID)
	}
	return nil
}

// Get reads the profile; a missing key is not an error.
func (s *Store) Get(ctx context.Context, userID string) (risk.Profile, bool, error) {
	rdb, err := s.client.Underlying()
	if err != nil {
		return risk.Profile{}, false, err
	}
	raw, err := rdb.Get(ctx, s.profileKey(userID)).Result()
	if stderrors.Is(err, redis.Nil) {
		return risk.Profile{}, false, nil
	}
	if err != nil {
		return risk.Profile{}, false, errors.Wrap(err, errors.ErrCodeCacheError, "failed to load profile").WithDetail("user=" + userID)
	}

	var p risk.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return risk.Profile{}, false, errors.Wrap(err, errors.ErrCodeSerialization, "corrupt profile").WithDetail("user=" + userID)
	}
	if p.DietaryPreferences == nil {
		p.DietaryPreferences = []string{}
	}
	return p, true, nil
}

// Save overwrites the profile.
func (s *Store) Save(ctx context.Context, userID string, profile risk.Profile) error {
	rdb, err := s.client.Underlying()
	if err != nil {
		return err
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode profile")
	}
	if err := rdb.Set(ctx, s.profileKey(userID), string(data), s.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to save profile").WithDetail("user=" + userID)
	}
	s.logger.Debug("Profile saved", logging.String("user_id", userID))
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx) }

func (s *Store) Close() error { return s.client.Close() }

//Personal.AI order the ending
