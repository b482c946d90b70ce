package model

import "time"

// Table is a ladder: an ordered list of question references shared between
// one owner and zero or more collaborators. The owner is stored explicitly,
// but the wire format keeps the historical shape where the owner is the
// first element of the "user" array.
type Table struct {
	TableID       int64     `json:"table_id"`
	TableTitle    string    `json:"table_title"`
	Questions     []int64   `json:"questions"`
	Owner         string    `json:"-"`
	Collaborators []string  `json:"-"`
	CreatedAt     time.Time `json:"created_at"`

	// Users is the serialized membership list, owner first. Populated by
	// Normalize before the table is written to a response.
	Users []string `json:"user"`
}

// Normalize fills the wire-format fields from the explicit ones.
func (t *Table) Normalize() {
	t.Users = append([]string{t.Owner}, t.Collaborators...)
	if t.Questions == nil {
		t.Questions = []int64{}
	}
}

// IsMember reports whether username is the owner or a collaborator.
func (t *Table) IsMember(username string) bool {
	if t.Owner == username {
		return true
	}
	for _, u := range t.Collaborators {
		if u == username {
			return true
		}
	}
	return false
}
