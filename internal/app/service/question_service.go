package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ladder_zone/internal/common"
	"ladder_zone/internal/domain/model"
	"ladder_zone/internal/domain/repository"

	"github.com/gosimple/slug"
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	counterRepo  repository.CounterRepository
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	counterRepo repository.CounterRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		userRepo:     userRepo,
		counterRepo:  counterRepo,
	}
}

type AddQuestionRequest struct {
	Title string   `json:"title"`
	Link  string   `json:"link"`
	Tags  []string `json:"tags"`
}

// AddQuestion creates a question with a freshly allocated ID. The duplicate
// check runs before allocation so a rejected duplicate does not burn an ID
// on the common path. The check and the allocation are not atomic: two
// concurrent submissions of the same link can both pass the check, in which
// case the unique index on link rejects the loser (its allocated ID is
// burned, never reused).
func (s *QuestionService) AddQuestion(ctx context.Context, req AddQuestionRequest) (*model.Question, error) {
	if req.Title == "" || strings.TrimSpace(req.Link) == "" {
		return nil, fmt.Errorf("title and link are required: %w", common.ErrBadRequest)
	}
	link := strings.TrimSpace(req.Link)

	if _, err := s.questionRepo.FindByLink(ctx, link); err == nil {
		return nil, fmt.Errorf("a question with this link already exists: %w", common.ErrBadRequest)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check link: %w", err)
	}

	id, err := s.counterRepo.Next(ctx, repository.CounterQuestionID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate question id: %w", err)
	}

	question := &model.Question{
		QuestionID: id,
		Title:      req.Title,
		Link:       link,
		Tags:       normalizeTags(req.Tags),
		SolvedBy:   []string{},
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("a question with this link already exists: %w", common.ErrBadRequest)
		}
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// normalizeTags slugifies and dedupes the incoming tag set.
func normalizeTags(tags []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, t := range tags {
		normalized := slug.Make(t)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

func (s *QuestionService) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	return s.questionRepo.FindByID(ctx, id)
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.List(ctx)
}

// MarkSolved records that username solved the question. Marking an
// already-solved question is a no-op that still succeeds.
func (s *QuestionService) MarkSolved(ctx context.Context, questionID int64, username string) (*model.Question, error) {
	if questionID == 0 || username == "" {
		return nil, fmt.Errorf("questionid and user are required: %w", common.ErrBadRequest)
	}
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.MarkSolved(ctx, questionID, user.Username); err != nil {
		return nil, err
	}
	return s.questionRepo.FindByID(ctx, questionID)
}

// UnmarkSolved is the inverse of MarkSolved, equally idempotent.
func (s *QuestionService) UnmarkSolved(ctx context.Context, questionID int64, username string) (*model.Question, error) {
	if questionID == 0 || username == "" {
		return nil, fmt.Errorf("questionid and user are required: %w", common.ErrBadRequest)
	}
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.UnmarkSolved(ctx, questionID, user.Username); err != nil {
		return nil, err
	}
	return s.questionRepo.FindByID(ctx, questionID)
}
