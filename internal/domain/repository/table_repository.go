package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ladder_zone/internal/common"
	"ladder_zone/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type TableRepository interface {
	Create(ctx context.Context, table *model.Table) error
	FindByID(ctx context.Context, id int64) (*model.Table, error)
	List(ctx context.Context) ([]model.Table, error)
	ListByMember(ctx context.Context, username string) ([]model.Table, error)
	Delete(ctx context.Context, id int64) error

	// AddQuestion appends the question at the end of the list unless it is
	// already present; repeat calls are no-ops.
	AddQuestion(ctx context.Context, tableID, questionID int64) error
	RemoveQuestions(ctx context.Context, tableID int64, questionIDs []int64) error

	AddCollaborator(ctx context.Context, tableID int64, username string) error
	RemoveCollaborator(ctx context.Context, tableID int64, username string) error

	// RemoveQuestionFromAll is the best-effort cleanup after a question
	// deletion.
	RemoveQuestionFromAll(ctx context.Context, questionID int64) error
}

type pgTableRepository struct {
	db *sql.DB
}

func NewPgTableRepository(db *sql.DB) TableRepository {
	return &pgTableRepository{db: db}
}

func (r *pgTableRepository) Create(ctx context.Context, t *model.Table) error {
	query := `INSERT INTO tables (table_id, table_title, owner_username) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, t.TableID, t.TableTitle, t.Owner); err != nil {
		return fmt.Errorf("pgTableRepository.Create: %w", err)
	}
	for i, qid := range t.Questions {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO table_questions (table_id, question_id, position) VALUES ($1, $2, $3)
			 ON CONFLICT DO NOTHING`,
			t.TableID, qid, i+1)
		if err != nil {
			return fmt.Errorf("pgTableRepository.Create question %d: %w", qid, err)
		}
	}
	return nil
}

func (r *pgTableRepository) FindByID(ctx context.Context, id int64) (*model.Table, error) {
	query := `SELECT table_id, table_title, owner_username, created_at FROM tables WHERE table_id = $1`
	t := &model.Table{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.TableID, &t.TableTitle, &t.Owner, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTableRepository.FindByID: %w", err)
	}
	if err := r.loadLists(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTableRepository) loadLists(ctx context.Context, t *model.Table) error {
	t.Questions = []int64{}
	t.Collaborators = []string{}

	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id FROM table_questions WHERE table_id = $1 ORDER BY position ASC, question_id ASC`, t.TableID)
	if err != nil {
		return fmt.Errorf("pgTableRepository.loadLists questions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var qid int64
		if err := rows.Scan(&qid); err != nil {
			return fmt.Errorf("pgTableRepository.loadLists question scan: %w", err)
		}
		t.Questions = append(t.Questions, qid)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("pgTableRepository.loadLists questions rows.Err: %w", err)
	}

	collabRows, err := r.db.QueryContext(ctx,
		`SELECT username FROM table_collaborators WHERE table_id = $1 ORDER BY position ASC, username ASC`, t.TableID)
	if err != nil {
		return fmt.Errorf("pgTableRepository.loadLists collaborators: %w", err)
	}
	defer collabRows.Close()
	for collabRows.Next() {
		var username string
		if err := collabRows.Scan(&username); err != nil {
			return fmt.Errorf("pgTableRepository.loadLists collaborator scan: %w", err)
		}
		t.Collaborators = append(t.Collaborators, username)
	}
	if err = collabRows.Err(); err != nil {
		return fmt.Errorf("pgTableRepository.loadLists collaborators rows.Err: %w", err)
	}
	return nil
}

func (r *pgTableRepository) List(ctx context.Context) ([]model.Table, error) {
	return r.list(ctx, `SELECT table_id, table_title, owner_username, created_at FROM tables ORDER BY table_id ASC`)
}

func (r *pgTableRepository) ListByMember(ctx context.Context, username string) ([]model.Table, error) {
	query := `SELECT t.table_id, t.table_title, t.owner_username, t.created_at
	          FROM tables t
	          WHERE t.owner_username = $1
	             OR EXISTS (SELECT 1 FROM table_collaborators c
	                        WHERE c.table_id = t.table_id AND c.username = $1)
	          ORDER BY t.table_id ASC`
	return r.list(ctx, query, username)
}

func (r *pgTableRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgTableRepository.list query: %w", err)
	}
	defer rows.Close()

	tables := []model.Table{}
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.TableID, &t.TableTitle, &t.Owner, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTableRepository.list scan: %w", err)
		}
		tables = append(tables, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTableRepository.list rows.Err: %w", err)
	}

	for i := range tables {
		if err := r.loadLists(ctx, &tables[i]); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

func (r *pgTableRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE table_id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTableRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTableRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTableRepository) AddQuestion(ctx context.Context, tableID, questionID int64) error {
	// Single statement so the position assignment and the dedup both happen
	// inside the database; concurrent adds of distinct questions do not
	// clobber each other. Two racing adds can still tie on position; the
	// reload query breaks that tie by question_id.
	query := `INSERT INTO table_questions (table_id, question_id, position)
	          SELECT $1, $2, COALESCE(MAX(position), 0) + 1
	          FROM table_questions WHERE table_id = $1
	          ON CONFLICT (table_id, question_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, tableID, questionID); err != nil {
		return fmt.Errorf("pgTableRepository.AddQuestion: %w", err)
	}
	return nil
}

func (r *pgTableRepository) RemoveQuestions(ctx context.Context, tableID int64, questionIDs []int64) error {
	if len(questionIDs) == 0 {
		return nil
	}
	placeholders := make([]string, len(questionIDs))
	args := []interface{}{tableID}
	for i, qid := range questionIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, qid)
	}
	query := fmt.Sprintf(`DELETE FROM table_questions WHERE table_id = $1 AND question_id IN (%s)`,
		strings.Join(placeholders, ","))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("pgTableRepository.RemoveQuestions: %w", err)
	}
	return nil
}

func (r *pgTableRepository) AddCollaborator(ctx context.Context, tableID int64, username string) error {
	query := `INSERT INTO table_collaborators (table_id, username, position)
	          SELECT $1, $2, COALESCE(MAX(position), 0) + 1
	          FROM table_collaborators WHERE table_id = $1`
	if _, err := r.db.ExecContext(ctx, query, tableID, username); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user already added to this table: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTableRepository.AddCollaborator: %w", err)
	}
	return nil
}

func (r *pgTableRepository) RemoveCollaborator(ctx context.Context, tableID int64, username string) error {
	query := `DELETE FROM table_collaborators WHERE table_id = $1 AND username = $2`
	res, err := r.db.ExecContext(ctx, query, tableID, username)
	if err != nil {
		return fmt.Errorf("pgTableRepository.RemoveCollaborator: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTableRepository.RemoveCollaborator rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTableRepository) RemoveQuestionFromAll(ctx context.Context, questionID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM table_questions WHERE question_id = $1`, questionID); err != nil {
		return fmt.Errorf("pgTableRepository.RemoveQuestionFromAll: %w", err)
	}
	return nil
}
