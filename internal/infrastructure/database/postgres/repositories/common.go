package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/EatTrue/internal/domain/risk"
)

// queryExecutor abstracts sql.DB and sql.Tx
type queryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// scanner abstracts sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHistoryEntry(s scanner) (risk.HistoryEntry, error) {
	var e risk.HistoryEntry
	if err := s.Scan(&e.Date, &e.OverallScore); err != nil {
		return risk.HistoryEntry{}, err
	}
	e.Date = e.Date.UTC()
	return e, nil
}

//Personal.AI order the ending
