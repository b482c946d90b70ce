package service

import (
	"context"
	"fmt"
	"log"

	"ladder_zone/internal/domain/model"
	"ladder_zone/internal/domain/repository"
)

// AdminService handles the destructive admin operations. Cascading cleanup
// after a delete is a second independent write: best-effort, not
// transactional. A crash between the two leaves a dangling reference that
// readers tolerate.
type AdminService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	tableRepo    repository.TableRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	tableRepo repository.TableRepository,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		tableRepo:    tableRepo,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].HashedPassword = ""
		if users[i].Tables == nil {
			users[i].Tables = []int64{}
		}
	}
	return users, nil
}

func (s *AdminService) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.List(ctx)
}

func (s *AdminService) ListLadders(ctx context.Context) ([]model.Table, error) {
	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tables {
		tables[i].Normalize()
	}
	return tables, nil
}

// DeleteUser removes the user, then scrubs their username from every
// question's solved list.
func (s *AdminService) DeleteUser(ctx context.Context, username string) (string, error) {
	if err := s.userRepo.Delete(ctx, username); err != nil {
		return "", err
	}
	if err := s.questionRepo.RemoveSolverFromAll(ctx, username); err != nil {
		log.Printf("WARN: failed to remove %q from solved_by lists: %v", username, err)
	}
	return fmt.Sprintf("User %q deleted and removed from all solved_by lists.", username), nil
}

// DeleteQuestion removes the question, then scrubs its id from every
// ladder. The id is never reallocated.
func (s *AdminService) DeleteQuestion(ctx context.Context, id int64) (string, error) {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return "", err
	}
	if err := s.tableRepo.RemoveQuestionFromAll(ctx, id); err != nil {
		log.Printf("WARN: failed to remove question %d from ladders: %v", id, err)
	}
	return fmt.Sprintf("Question with id %d deleted and removed from all ladders.", id), nil
}

func (s *AdminService) DeleteLadder(ctx context.Context, id int64) (string, error) {
	if err := s.tableRepo.Delete(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("Ladder with id %d deleted.", id), nil
}
