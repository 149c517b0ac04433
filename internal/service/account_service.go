package service

import (
	"context"
	"strings"

	"snipshare/internal/models"
	"snipshare/internal/repository"
)

// CreateUserInput carries the caller-supplied fields of a new account.
type CreateUserInput struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Bio   string  `json:"bio"`
	Image string  `json:"image"`
}

// AccountService manages user accounts and their cascade deletion.
type AccountService struct {
	userRepo repository.UserRepository
	cascade  repository.CascadeRepository
}

// NewAccountService returns a new AccountService.
func NewAccountService(userRepo repository.UserRepository, cascade repository.CascadeRepository) *AccountService {
	return &AccountService{userRepo: userRepo, cascade: cascade}
}

// CreateUser creates a new account.
func (s *AccountService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("user name must not be empty")
	}
	user := &models.User{
		Name:  in.Name,
		Email: in.Email,
		Bio:   in.Bio,
		Image: in.Image,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser fetches a single account by ID.
func (s *AccountService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateUser applies profile edits to an existing account.
func (s *AccountService) UpdateUser(ctx context.Context, userID string, in CreateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("user name must not be empty")
	}
	user.Name = in.Name
	user.Email = in.Email
	user.Bio = in.Bio
	user.Image = in.Image
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account and every row that references it,
// directly or through its posts, in one atomic cascade.
func (s *AccountService) DeleteUser(ctx context.Context, userID string) error {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("User", userID)
	}
	return s.cascade.DeleteUser(ctx, userID)
}
