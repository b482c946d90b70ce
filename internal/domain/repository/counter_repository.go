package repository

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	CounterQuestionID = "question_id"
	CounterTableID    = "table_id"
)

// CounterRepository allocates unique, strictly increasing integer IDs per
// entity type. Two concurrent Next calls for the same name never return the
// same value.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

type pgCounterRepository struct {
	db *sql.DB
}

func NewPgCounterRepository(db *sql.DB) CounterRepository {
	return &pgCounterRepository{db: db}
}

// Next performs a single atomic increment-and-read against the counter row,
// creating it with seq=1 on first use. The database serializes concurrent
// upserts on the primary key, so no value is ever handed out twice.
func (r *pgCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO counters (name, seq) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
	          RETURNING seq`
	var seq int64
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&seq); err != nil {
		return 0, fmt.Errorf("pgCounterRepository.Next(%s): %w", name, err)
	}
	return seq, nil
}
