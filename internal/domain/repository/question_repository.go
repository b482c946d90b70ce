package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ladder_zone/internal/common"
	"ladder_zone/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id int64) (*model.Question, error)
	FindByLink(ctx context.Context, link string) (*model.Question, error)
	List(ctx context.Context) ([]model.Question, error)
	Delete(ctx context.Context, id int64) error

	// MarkSolved and UnmarkSolved are idempotent single-statement writes:
	// re-marking or re-unmarking is a no-op.
	MarkSolved(ctx context.Context, id int64, username string) error
	UnmarkSolved(ctx context.Context, id int64, username string) error

	// RemoveSolverFromAll is the best-effort cleanup after a user deletion.
	RemoveSolverFromAll(ctx context.Context, username string) error
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions (question_id, title, link) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, q.QuestionID, q.Title, q.Link)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for link
			return fmt.Errorf("question with this link already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}

	for _, tag := range q.Tags {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO question_tags (question_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			q.QuestionID, tag)
		if err != nil {
			return fmt.Errorf("pgQuestionRepository.Create tag %q: %w", tag, err)
		}
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	query := `SELECT question_id, title, link, created_at FROM questions WHERE question_id = $1`
	q := &model.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.QuestionID, &q.Title, &q.Link, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	if err := r.loadLists(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *pgQuestionRepository) FindByLink(ctx context.Context, link string) (*model.Question, error) {
	query := `SELECT question_id, title, link, created_at FROM questions WHERE link = $1`
	q := &model.Question{}
	err := r.db.QueryRowContext(ctx, query, link).Scan(&q.QuestionID, &q.Title, &q.Link, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByLink: %w", err)
	}
	if err := r.loadLists(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *pgQuestionRepository) loadLists(ctx context.Context, q *model.Question) error {
	q.Tags = []string{}
	q.SolvedBy = []string{}

	rows, err := r.db.QueryContext(ctx,
		`SELECT tag FROM question_tags WHERE question_id = $1 ORDER BY tag ASC`, q.QuestionID)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.loadLists tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return fmt.Errorf("pgQuestionRepository.loadLists tag scan: %w", err)
		}
		q.Tags = append(q.Tags, tag)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("pgQuestionRepository.loadLists tags rows.Err: %w", err)
	}

	solverRows, err := r.db.QueryContext(ctx,
		`SELECT username FROM question_solvers WHERE question_id = $1 ORDER BY solved_at ASC, username ASC`, q.QuestionID)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.loadLists solvers: %w", err)
	}
	defer solverRows.Close()
	for solverRows.Next() {
		var username string
		if err := solverRows.Scan(&username); err != nil {
			return fmt.Errorf("pgQuestionRepository.loadLists solver scan: %w", err)
		}
		q.SolvedBy = append(q.SolvedBy, username)
	}
	if err = solverRows.Err(); err != nil {
		return fmt.Errorf("pgQuestionRepository.loadLists solvers rows.Err: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id, title, link, created_at FROM questions ORDER BY question_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.List query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.QuestionID, &q.Title, &q.Link, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.List scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.List rows.Err: %w", err)
	}

	for i := range questions {
		if err := r.loadLists(ctx, &questions[i]); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

func (r *pgQuestionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE question_id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgQuestionRepository) MarkSolved(ctx context.Context, id int64, username string) error {
	query := `INSERT INTO question_solvers (question_id, username) VALUES ($1, $2)
	          ON CONFLICT (question_id, username) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, id, username); err != nil {
		return fmt.Errorf("pgQuestionRepository.MarkSolved: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) UnmarkSolved(ctx context.Context, id int64, username string) error {
	query := `DELETE FROM question_solvers WHERE question_id = $1 AND username = $2`
	if _, err := r.db.ExecContext(ctx, query, id, username); err != nil {
		return fmt.Errorf("pgQuestionRepository.UnmarkSolved: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) RemoveSolverFromAll(ctx context.Context, username string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM question_solvers WHERE username = $1`, username); err != nil {
		return fmt.Errorf("pgQuestionRepository.RemoveSolverFromAll: %w", err)
	}
	return nil
}
