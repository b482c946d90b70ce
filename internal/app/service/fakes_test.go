package service

import (
	"context"
	"fmt"
	"sync"

	"ladder_zone/internal/common"
	"ladder_zone/internal/domain/model"
	"ladder_zone/internal/domain/repository"
)

// In-memory repository fakes. They mirror the Postgres implementations'
// contracts (ErrNotFound, ErrConflict, idempotent writes) so the services
// can be exercised without a database.

type fakeCounterRepo struct {
	mu   sync.Mutex
	seqs map[string]int64
	fail bool
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{seqs: map[string]int64{}}
}

func (f *fakeCounterRepo) Next(ctx context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return 0, fmt.Errorf("counter store unavailable")
	}
	f.seqs[name]++
	return f.seqs[name], nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Username]; ok {
		return common.ErrConflict
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return common.ErrConflict
		}
	}
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, username)
	return nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[int64]*model.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[int64]*model.Question{}}
}

func copyQuestion(q *model.Question) *model.Question {
	copied := *q
	copied.Tags = append([]string{}, q.Tags...)
	copied.SolvedBy = append([]string{}, q.SolvedBy...)
	return &copied
}

func (f *fakeQuestionRepo) Create(ctx context.Context, q *model.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.questions {
		if existing.Link == q.Link {
			return common.ErrConflict
		}
	}
	f.questions[q.QuestionID] = copyQuestion(q)
	return nil
}

func (f *fakeQuestionRepo) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyQuestion(q), nil
}

func (f *fakeQuestionRepo) FindByLink(ctx context.Context, link string) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.questions {
		if q.Link == link {
			return copyQuestion(q), nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeQuestionRepo) List(ctx context.Context) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Question{}
	for _, q := range f.questions {
		out = append(out, *copyQuestion(q))
	}
	return out, nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.questions[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) MarkSolved(ctx context.Context, id int64, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return common.ErrNotFound
	}
	for _, u := range q.SolvedBy {
		if u == username {
			return nil
		}
	}
	q.SolvedBy = append(q.SolvedBy, username)
	return nil
}

func (f *fakeQuestionRepo) UnmarkSolved(ctx context.Context, id int64, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return common.ErrNotFound
	}
	kept := q.SolvedBy[:0]
	for _, u := range q.SolvedBy {
		if u != username {
			kept = append(kept, u)
		}
	}
	q.SolvedBy = kept
	return nil
}

func (f *fakeQuestionRepo) RemoveSolverFromAll(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.questions {
		kept := q.SolvedBy[:0]
		for _, u := range q.SolvedBy {
			if u != username {
				kept = append(kept, u)
			}
		}
		q.SolvedBy = kept
	}
	return nil
}

type fakeTableRepo struct {
	mu     sync.Mutex
	tables map[int64]*model.Table
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: map[int64]*model.Table{}}
}

func copyTable(t *model.Table) *model.Table {
	copied := *t
	copied.Questions = append([]int64{}, t.Questions...)
	copied.Collaborators = append([]string{}, t.Collaborators...)
	copied.Users = nil
	return &copied
}

func (f *fakeTableRepo) Create(ctx context.Context, t *model.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[t.TableID] = copyTable(t)
	return nil
}

func (f *fakeTableRepo) FindByID(ctx context.Context, id int64) (*model.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyTable(t), nil
}

func (f *fakeTableRepo) List(ctx context.Context) ([]model.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Table{}
	for _, t := range f.tables {
		out = append(out, *copyTable(t))
	}
	return out, nil
}

func (f *fakeTableRepo) ListByMember(ctx context.Context, username string) ([]model.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Table{}
	for _, t := range f.tables {
		if t.IsMember(username) {
			out = append(out, *copyTable(t))
		}
	}
	return out, nil
}

func (f *fakeTableRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tables[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.tables, id)
	return nil
}

func (f *fakeTableRepo) AddQuestion(ctx context.Context, tableID, questionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[tableID]
	if !ok {
		return common.ErrNotFound
	}
	for _, qid := range t.Questions {
		if qid == questionID {
			return nil
		}
	}
	t.Questions = append(t.Questions, questionID)
	return nil
}

func (f *fakeTableRepo) RemoveQuestions(ctx context.Context, tableID int64, questionIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[tableID]
	if !ok {
		return common.ErrNotFound
	}
	drop := map[int64]bool{}
	for _, qid := range questionIDs {
		drop[qid] = true
	}
	kept := t.Questions[:0]
	for _, qid := range t.Questions {
		if !drop[qid] {
			kept = append(kept, qid)
		}
	}
	t.Questions = kept
	return nil
}

func (f *fakeTableRepo) AddCollaborator(ctx context.Context, tableID int64, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[tableID]
	if !ok {
		return common.ErrNotFound
	}
	for _, u := range t.Collaborators {
		if u == username {
			return common.ErrConflict
		}
	}
	t.Collaborators = append(t.Collaborators, username)
	return nil
}

func (f *fakeTableRepo) RemoveCollaborator(ctx context.Context, tableID int64, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[tableID]
	if !ok {
		return common.ErrNotFound
	}
	kept := t.Collaborators[:0]
	found := false
	for _, u := range t.Collaborators {
		if u == username {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	t.Collaborators = kept
	if !found {
		return common.ErrNotFound
	}
	return nil
}

func (f *fakeTableRepo) RemoveQuestionFromAll(ctx context.Context, questionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tables {
		kept := t.Questions[:0]
		for _, qid := range t.Questions {
			if qid != questionID {
				kept = append(kept, qid)
			}
		}
		t.Questions = kept
	}
	return nil
}

var (
	_ repository.CounterRepository  = (*fakeCounterRepo)(nil)
	_ repository.UserRepository     = (*fakeUserRepo)(nil)
	_ repository.QuestionRepository = (*fakeQuestionRepo)(nil)
	_ repository.TableRepository    = (*fakeTableRepo)(nil)
)
