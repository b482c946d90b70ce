package service

import (
	"context"

	"ladder_zone/internal/domain/model"
	"ladder_zone/internal/domain/repository"
)

type UserService struct {
	userRepo  repository.UserRepository
	tableRepo repository.TableRepository
}

func NewUserService(userRepo repository.UserRepository, tableRepo repository.TableRepository) *UserService {
	return &UserService{userRepo: userRepo, tableRepo: tableRepo}
}

// ListUsers returns every user without password material.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
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

// GetProfile returns the user together with the ids of the ladders they
// participate in. Membership is derived, not stored on the user record.
func (s *UserService) GetProfile(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""

	tables, err := s.tableRepo.ListByMember(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Tables = []int64{}
	for _, t := range tables {
		user.Tables = append(user.Tables, t.TableID)
	}
	return user, nil
}
