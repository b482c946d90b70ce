package database

import (
	"database/sql"
	"fmt"
)

// Schema is the full DDL for the application. List-valued document fields
// from the API (questions, user, tags, solved_by) are normalized into child
// tables with a position column to keep their order.
const Schema = `
CREATE TABLE IF NOT EXISTS counters (
	name TEXT PRIMARY KEY,
	seq  BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS users (
	id              UUID PRIMARY KEY,
	username        TEXT NOT NULL UNIQUE,
	email           TEXT NOT NULL UNIQUE,
	hashed_password TEXT NOT NULL,
	phone           TEXT,
	role            TEXT NOT NULL DEFAULT 'user',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS questions (
	question_id BIGINT PRIMARY KEY,
	title       TEXT NOT NULL,
	link        TEXT NOT NULL UNIQUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS question_tags (
	question_id BIGINT NOT NULL REFERENCES questions(question_id) ON DELETE CASCADE,
	tag         TEXT NOT NULL,
	PRIMARY KEY (question_id, tag)
);

CREATE TABLE IF NOT EXISTS question_solvers (
	question_id BIGINT NOT NULL REFERENCES questions(question_id) ON DELETE CASCADE,
	username    TEXT NOT NULL,
	solved_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (question_id, username)
);

CREATE TABLE IF NOT EXISTS tables (
	table_id       BIGINT PRIMARY KEY,
	table_title    TEXT NOT NULL,
	owner_username TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS table_questions (
	table_id    BIGINT NOT NULL REFERENCES tables(table_id) ON DELETE CASCADE,
	question_id BIGINT NOT NULL,
	position    INT NOT NULL,
	PRIMARY KEY (table_id, question_id)
);

CREATE TABLE IF NOT EXISTS table_collaborators (
	table_id BIGINT NOT NULL REFERENCES tables(table_id) ON DELETE CASCADE,
	username TEXT NOT NULL,
	position INT NOT NULL,
	PRIMARY KEY (table_id, username)
);

CREATE INDEX IF NOT EXISTS idx_table_collaborators_username ON table_collaborators(username);
CREATE INDEX IF NOT EXISTS idx_question_solvers_username ON question_solvers(username);
`

// EnsureSchema creates all tables if they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("database.EnsureSchema: %w", err)
	}
	return nil
}
