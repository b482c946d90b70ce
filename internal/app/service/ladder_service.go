package service

import (
	"context"
	"errors"
	"fmt"

	"ladder_zone/internal/common"
	"ladder_zone/internal/domain/model"
	"ladder_zone/internal/domain/repository"
)

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// LadderService owns every table mutation: create, copy, question edits,
// collaborator management and deletion. Callers are assumed to be
// authenticated already; the only identity check done here is the
// membership rule on deletion.
type LadderService struct {
	tableRepo   repository.TableRepository
	counterRepo repository.CounterRepository
}

func NewLadderService(tableRepo repository.TableRepository, counterRepo repository.CounterRepository) *LadderService {
	return &LadderService{tableRepo: tableRepo, counterRepo: counterRepo}
}

func (s *LadderService) CreateTable(ctx context.Context, title, owner string) (*model.Table, error) {
	if title == "" || owner == "" {
		return nil, fmt.Errorf("table title and creator are required: %w", common.ErrBadRequest)
	}

	id, err := s.counterRepo.Next(ctx, repository.CounterTableID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate table id: %w", err)
	}

	table := &model.Table{
		TableID:    id,
		TableTitle: title,
		Questions:  []int64{},
		Owner:      owner,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	table.Normalize()
	return table, nil
}

// CopyTable creates an independent table from the source's question set.
// Duplicates in the source collapse; the copy shares no state with it.
func (s *LadderService) CopyTable(ctx context.Context, sourceID int64, newTitle, newOwner string) (*model.Table, error) {
	if sourceID == 0 || newTitle == "" || newOwner == "" {
		return nil, fmt.Errorf("missing required fields: %w", common.ErrBadRequest)
	}

	source, err := s.tableRepo.FindByID(ctx, sourceID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("source table not found: %w", common.ErrNotFound)
		}
		return nil, err
	}

	seen := map[int64]bool{}
	questions := []int64{}
	for _, qid := range source.Questions {
		if seen[qid] {
			continue
		}
		seen[qid] = true
		questions = append(questions, qid)
	}

	id, err := s.counterRepo.Next(ctx, repository.CounterTableID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate table id: %w", err)
	}

	table := &model.Table{
		TableID:    id,
		TableTitle: newTitle,
		Questions:  questions,
		Owner:      newOwner,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to create table copy: %w", err)
	}
	table.Normalize()
	return table, nil
}

// EditTable adds or removes question references. Adds are idempotent per id
// and preserve first-seen insertion order; removes filter every given id in
// one pass.
func (s *LadderService) EditTable(ctx context.Context, tableID int64, questionIDs []int64, action string) (*model.Table, error) {
	if tableID == 0 || len(questionIDs) == 0 {
		return nil, fmt.Errorf("table_id and a non-empty questionIds array are required: %w", common.ErrBadRequest)
	}
	if action != ActionAdd && action != ActionRemove {
		return nil, fmt.Errorf("invalid action, must be 'add' or 'remove': %w", common.ErrBadRequest)
	}

	if _, err := s.tableRepo.FindByID(ctx, tableID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("table not found: %w", common.ErrNotFound)
		}
		return nil, err
	}

	switch action {
	case ActionAdd:
		for _, qid := range questionIDs {
			if err := s.tableRepo.AddQuestion(ctx, tableID, qid); err != nil {
				return nil, err
			}
		}
	case ActionRemove:
		if err := s.tableRepo.RemoveQuestions(ctx, tableID, questionIDs); err != nil {
			return nil, err
		}
	}

	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	table.Normalize()
	return table, nil
}

// AddCollaborator appends a user to the table's membership. Duplicates are
// reported the way the historical API did: as a 400-class error.
func (s *LadderService) AddCollaborator(ctx context.Context, tableID int64, username string) (*model.Table, error) {
	if tableID == 0 || username == "" {
		return nil, fmt.Errorf("source_table_id and new_user_id are required: %w", common.ErrBadRequest)
	}

	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("table not found: %w", common.ErrNotFound)
		}
		return nil, err
	}
	if table.IsMember(username) {
		return nil, fmt.Errorf("user already added to this table: %w", common.ErrBadRequest)
	}

	if err := s.tableRepo.AddCollaborator(ctx, tableID, username); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("user already added to this table: %w", common.ErrBadRequest)
		}
		return nil, err
	}

	table, err = s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	table.Normalize()
	return table, nil
}

// RemoveCollaborator removes a non-owner member. The owner can never be
// removed this way, regardless of who asks.
func (s *LadderService) RemoveCollaborator(ctx context.Context, tableID int64, username string) (*model.Table, error) {
	if tableID == 0 || username == "" {
		return nil, fmt.Errorf("source_table_id and user_to_remove are required: %w", common.ErrBadRequest)
	}

	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("table not found: %w", common.ErrNotFound)
		}
		return nil, err
	}
	if table.Owner == username {
		return nil, fmt.Errorf("cannot remove the owner of the ladder: %w", common.ErrForbidden)
	}
	if !table.IsMember(username) {
		return nil, fmt.Errorf("user not found in this ladder: %w", common.ErrBadRequest)
	}

	if err := s.tableRepo.RemoveCollaborator(ctx, tableID, username); err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	table, err = s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	table.Normalize()
	return table, nil
}

// DeleteLadder deletes a table. Any member may delete, not just the owner;
// that matches the historical behavior and is kept deliberately.
func (s *LadderService) DeleteLadder(ctx context.Context, tableID int64, requestingUser string) error {
	if tableID == 0 || requestingUser == "" {
		return fmt.Errorf("table_id and user_id are required: %w", common.ErrBadRequest)
	}

	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("ladder not found: %w", common.ErrNotFound)
		}
		return err
	}
	if !table.IsMember(requestingUser) {
		return fmt.Errorf("you don't have permission to delete this ladder: %w", common.ErrForbidden)
	}

	return s.tableRepo.Delete(ctx, tableID)
}

func (s *LadderService) GetLadder(ctx context.Context, tableID int64) (*model.Table, error) {
	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("ladder not found: %w", common.ErrNotFound)
		}
		return nil, err
	}
	table.Normalize()
	return table, nil
}

// ListLadders returns every table the user owns or collaborates on.
func (s *LadderService) ListLadders(ctx context.Context, username string) ([]model.Table, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", common.ErrBadRequest)
	}
	tables, err := s.tableRepo.ListByMember(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range tables {
		tables[i].Normalize()
	}
	return tables, nil
}
