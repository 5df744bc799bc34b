package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/lib/pq"

	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/infrastructure/database/postgres"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

const (
	selectHistorySQL = `SELECT scanned_at, overall_score FROM scan_history WHERE user_id = $1 ORDER BY id ASC`
	insertHistorySQL = `INSERT INTO scan_history (user_id, scanned_at, overall_score) VALUES ($1, $2, $3)`
	trimHistorySQL   = `
		DELETE FROM scan_history
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM scan_history WHERE user_id = $1 ORDER BY id DESC LIMIT $2
		)`
	selectProfileSQL = `SELECT age, dietary_preferences, pregnancy_status FROM user_profiles WHERE user_id = $1`
	upsertProfileSQL = `
		INSERT INTO user_profiles (user_id, age, dietary_preferences, pregnancy_status, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			dietary_preferences = EXCLUDED.dietary_preferences,
			pregnancy_status = EXCLUDED.pregnancy_status,
			updated_at = NOW()`
)

type postgresScanStore struct {
	conn       *postgres.Connection
	log        logging.Logger
	executor   queryExecutor
	maxEntries int
}

// NewPostgresScanStore returns a scan.Store over conn. maxEntries > 0 keeps
// only that many most recent history rows per user.
func NewPostgresScanStore(conn *postgres.Connection, log logging.Logger, maxEntries int) scan.Store {
	return &postgresScanStore{
		conn:       conn,
		log:        log,
		executor:   conn.DB(),
		maxEntries: maxEntries,
	}
}

func (r *postgresScanStore) Load(ctx context.Context, userID string) (risk.History, error) {
	rows, err := r.executor.QueryContext(ctx, selectHistorySQL, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load history").WithDetail("user=" + userID)
	}
	defer rows.Close()

	h := risk.History{}
	for rows.Next() {
		e, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan history row")
		}
		h = append(h, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate history")
	}
	return h, nil
}

// Append inserts and trims in one transaction.
func (r *postgresScanStore) Append(ctx context.Context, userID string, entry risk.HistoryEntry) error {
	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to begin transaction")
	}

	if _, err := tx.ExecContext(ctx, insertHistorySQL, userID, entry.Date, entry.OverallScore); err != nil {
		tx.Rollback()
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to append history").WithDetail("user=" + userID)
	}
	if r.maxEntries > 0 {
		res, err := tx.ExecContext(ctx, trimHistorySQL, userID, r.maxEntries)
		if err != nil {
			tx.Rollback()
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to trim history").WithDetail("user=" + userID)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			r.log.Debug("Trimmed scan history", logging.String("user_id", userID), logging.Int("rows", int(n)))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to commit transaction")
	}
	return nil
}

func (r *postgresScanStore) Get(ctx context.Context, userID string) (risk.Profile, bool, error) {
	var (
		p      risk.Profile
		prefs  []string
		status string
	)
	err := r.executor.QueryRowContext(ctx, selectProfileSQL, userID).
		Scan(&p.Age, pq.Array(&prefs), &status)
	if stderrors.Is(err, sql.ErrNoRows) {
		return risk.Profile{}, false, nil
	}
	if err != nil {
		return risk.Profile{}, false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load profile").WithDetail("user=" + userID)
	}
	if prefs == nil {
		prefs = []string{}
	}
	p.DietaryPreferences = prefs
	p.PregnancyStatus = risk.PregnancyStatus(status)
	return p, true, nil
}

func (r *postgresScanStore) Save(ctx context.Context, userID string, profile risk.Profile) error {
	prefs := profile.DietaryPreferences
	if prefs == nil {
		prefs = []string{}
	}
	_, err := r.executor.ExecContext(ctx, upsertProfileSQL,
		userID, profile.Age, pq.Array(prefs), string(profile.PregnancyStatus))
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23514" {
			return errors.Wrap(err, errors.ErrCodeProfileInvalid, "profile violates a table constraint")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save profile").WithDetail("user=" + userID)
	}
	return nil
}

func (r *postgresScanStore) Ping(ctx context.Context) error {
	return r.conn.HealthCheck(ctx)
}

func (r *postgresScanStore) Close() error {
	return r.conn.Close()
}

//Personal.AI order the ending
