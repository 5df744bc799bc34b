package redis

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

type StoreTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	store *Store
}

func (s *StoreTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	client, err := NewClient(&RedisConfig{Addr: s.mr.Addr()}, logging.NewNopLogger())
	s.Require().NoError(err)
	s.store = NewStore(client, logging.NewNopLogger(),
		WithKeyPrefix("test:"), WithMaxEntries(3), WithHistoryTTL(time.Hour))
}

func (s *StoreTestSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *StoreTestSuite) TestLoad_EmptyHistory() {
	h, err := s.store.Load(context.Background(), "alice")
	s.NoError(err)
	s.NotNil(h)
	s.Empty(h)
}

func (s *StoreTestSuite) TestAppend_TrimsAndExpires() {
	ctx := context.Background()
	day := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		s.Require().NoError(s.store.Append(ctx, "alice", risk.HistoryEntry{Date: day.AddDate(0, 0, i), OverallScore: i * 10}))
	}

	h, err := s.store.Load(ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(h, 3)
	s.Equal(30, h[0].OverallScore)
	s.Equal(50, h[2].OverallScore)
	s.True(h[2].Date.Equal(day.AddDate(0, 0, 5)))

	s.True(s.mr.Exists("test:history:alice"))
	s.Equal(time.Hour, s.mr.TTL("test:history:alice"))
}

func (s *StoreTestSuite) TestProfile_RoundTrip() {
	ctx := context.Background()

	_, found, err := s.store.Get(ctx, "bob")
	s.NoError(err)
	s.False(found)

	p := risk.Profile{Age: 34, DietaryPreferences: []string{"low_sodium"}, PregnancyStatus: risk.Pregnant}
	s.Require().NoError(s.store.Save(ctx, "bob", p))

	got, found, err := s.store.Get(ctx, "bob")
	s.NoError(err)
	s.True(found)
	s.Equal(p, got)
}

func (s *StoreTestSuite) TestLoad_CorruptEntry() {
	_, err := s.mr.RPush("test:history:eve", "{not json")
	s.Require().NoError(err)

	_, err = s.store.Load(context.Background(), "eve")
	s.True(errors.IsCode(err, errors.ErrCodeSerialization))
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestStore_BackendErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(NewClientWithUniversal(db, logging.NewNopLogger()), logging.NewNopLogger(), WithKeyPrefix("p:"))
	ctx := context.Background()

	mock.ExpectLRange("p:history:u1", 0, -1).SetErr(stderrors.New("connection reset"))
	_, err := store.Load(ctx, "u1")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheError))

	mock.ExpectGet("p:profile:u1").RedisNil()
	_, found, err := store.Get(ctx, "u1")
	assert.NoError(t, err)
	assert.False(t, found)

	mock.ExpectGet("p:profile:u1").SetErr(stderrors.New("timeout"))
	_, _, err = store.Get(ctx, "u1")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheError))

	mock.ExpectGet("p:profile:u2").SetVal(`{"age":7,"pregnancy_status":"not_pregnant"}`)
	p, found, err := store.Get(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, p.Age)
	assert.Equal(t, []string{}, p.DietaryPreferences)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ClosedClient(t *testing.T) {
	db, _ := redismock.NewClientMock()
	client := NewClientWithUniversal(db, logging.NewNopLogger())
	store := NewStore(client, logging.NewNopLogger())
	require.NoError(t, store.Close())

	_, err := store.Load(context.Background(), "u")
	assert.Equal(t, ErrClientClosed, err)
	assert.Equal(t, ErrClientClosed, store.Append(context.Background(), "u", risk.HistoryEntry{}))
}

//Personal.AI order the ending
