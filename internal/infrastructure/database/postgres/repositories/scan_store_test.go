package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/infrastructure/database/postgres"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

type ScanStoreTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	db    *sql.DB
	store scan.Store
}

func (s *ScanStoreTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.Require().NoError(err)

	conn := postgres.NewConnectionWithDB(s.db, logging.NewNopLogger())
	s.store = NewPostgresScanStore(conn, logging.NewNopLogger(), 3)
}

func (s *ScanStoreTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *ScanStoreTestSuite) TestLoad_OrdersOldestFirst() {
	t1 := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	s.mock.ExpectQuery(regexp.QuoteMeta(selectHistorySQL)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"scanned_at", "overall_score"}).
			AddRow(t1, 55).
			AddRow(t2, 72))

	h, err := s.store.Load(context.Background(), "alice")
	s.Require().NoError(err)
	s.Equal(risk.History{{Date: t1, OverallScore: 55}, {Date: t2, OverallScore: 72}}, h)
}

func (s *ScanStoreTestSuite) TestLoad_Empty() {
	s.mock.ExpectQuery(regexp.QuoteMeta(selectHistorySQL)).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"scanned_at", "overall_score"}))

	h, err := s.store.Load(context.Background(), "nobody")
	s.NoError(err)
	s.NotNil(h)
	s.Empty(h)
}

func (s *ScanStoreTestSuite) TestLoad_QueryError() {
	s.mock.ExpectQuery(regexp.QuoteMeta(selectHistorySQL)).
		WillReturnError(stderrors.New("relation does not exist"))

	_, err := s.store.Load(context.Background(), "alice")
	s.True(errors.IsCode(err, errors.CodeDatabaseError))
}

func (s *ScanStoreTestSuite) TestAppend_InsertsAndTrims() {
	at := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(insertHistorySQL)).
		WithArgs("alice", at, 69).
		WillReturnResult(sqlmock.NewResult(10, 1))
	s.mock.ExpectExec("DELETE FROM scan_history").
		WithArgs("alice", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.NoError(s.store.Append(context.Background(), "alice", risk.HistoryEntry{Date: at, OverallScore: 69}))
}

func (s *ScanStoreTestSuite) TestAppend_RollsBackOnInsertError() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(insertHistorySQL)).
		WillReturnError(stderrors.New("disk full"))
	s.mock.ExpectRollback()

	err := s.store.Append(context.Background(), "alice", risk.HistoryEntry{OverallScore: 1})
	s.True(errors.IsCode(err, errors.CodeDatabaseError))
}

func (s *ScanStoreTestSuite) TestGet_Found() {
	s.mock.ExpectQuery(regexp.QuoteMeta(selectProfileSQL)).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"age", "dietary_preferences", "pregnancy_status"}).
			AddRow(41, "{diabetic,low_sodium}", "not_pregnant"))

	p, found, err := s.store.Get(context.Background(), "bob")
	s.Require().NoError(err)
	s.True(found)
	s.Equal(risk.Profile{Age: 41, DietaryPreferences: []string{"diabetic", "low_sodium"}, PregnancyStatus: risk.NotPregnant}, p)
}

func (s *ScanStoreTestSuite) TestGet_NotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta(selectProfileSQL)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, found, err := s.store.Get(context.Background(), "ghost")
	s.NoError(err)
	s.False(found)
}

func (s *ScanStoreTestSuite) TestSave_Upserts() {
	s.mock.ExpectExec("INSERT INTO user_profiles").
		WithArgs("bob", 41, sqlmock.AnyArg(), "pregnant").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.store.Save(context.Background(), "bob",
		risk.Profile{Age: 41, DietaryPreferences: []string{"vegan"}, PregnancyStatus: risk.Pregnant})
	s.NoError(err)
}

func (s *ScanStoreTestSuite) TestSave_CheckViolation() {
	s.mock.ExpectExec("INSERT INTO user_profiles").
		WillReturnError(&pq.Error{Code: "23514", Message: "violates check constraint"})

	err := s.store.Save(context.Background(), "bob", risk.Profile{Age: -1, PregnancyStatus: risk.NotPregnant})
	s.True(errors.IsCode(err, errors.CodeProfileInvalid))
}

func TestScanStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ScanStoreTestSuite))
}

//Personal.AI order the ending
