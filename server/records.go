package server

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roadmemo/model"
)

// Result is one finished round.
type Result struct {
	Session   int32
	Round     int
	RoadIndex int
	Outcome   model.Outcome
	Steps     int
	Duration  time.Duration
	At        time.Time
}

type Recorder interface {
	Record(ctx context.Context, res Result) error
}

// LogRecorder only logs results.
type LogRecorder struct{}

func (LogRecorder) Record(_ context.Context, res Result) error {
	log.WithFields(log.Fields{
		"session": res.Session,
		"round":   res.Round,
		"road":    res.RoadIndex,
		"outcome": res.Outcome.Name(),
		"steps":   res.Steps,
		"took":    res.Duration,
	}).Info("round finished")
	return nil
}

const createResults = `CREATE TABLE IF NOT EXISTS round_results (
	id         SERIAL PRIMARY KEY,
	session    INTEGER NOT NULL,
	round      INTEGER NOT NULL,
	road_index INTEGER NOT NULL,
	outcome    TEXT NOT NULL,
	steps      INTEGER NOT NULL,
	took_ms    BIGINT NOT NULL,
	at         TIMESTAMPTZ NOT NULL
)`

const insertResult = `INSERT INTO round_results
	(session, round, road_index, outcome, steps, took_ms, at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// SQLRecorder stores results in PostgreSQL.
type SQLRecorder struct {
	db *sql.DB
}

func OpenSQLRecorder(ctx context.Context, dsn string) (*SQLRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping results db: %w", err)
	}
	if _, err := db.ExecContext(ctx, createResults); err != nil {
		db.Close()
		return nil, fmt.Errorf("create results table: %w", err)
	}
	return &SQLRecorder{db: db}, nil
}

func (r *SQLRecorder) Record(ctx context.Context, res Result) error {
	_, err := r.db.ExecContext(ctx, insertResult,
		res.Session, res.Round, res.RoadIndex, res.Outcome.Name(),
		res.Steps, res.Duration.Milliseconds(), res.At)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Count returns how many results carry the given outcome.
func (r *SQLRecorder) Count(ctx context.Context, outcome model.Outcome) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM round_results WHERE outcome = $1`, outcome.Name()).Scan(&n)
	return n, err
}

func (r *SQLRecorder) Close() error {
	return r.db.Close()
}
