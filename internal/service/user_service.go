// Package service implements the resource operations behind the HTTP handlers.
package service

import (
	"context"

	"postboard/internal/featureflags"
	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/repository"
	"postboard/internal/validation"
)

// PayloadValidator checks a decoded JSON body against a rule set.
type PayloadValidator interface {
	Validate(ctx context.Context, rs validation.RuleSet, payload map[string]any) (validation.Values, error)
}

type UserService struct {
	userRepo  repository.UserRepository
	validator PayloadValidator
	flags     *featureflags.Manager
}

func NewUserService(userRepo repository.UserRepository, validator PayloadValidator, flags *featureflags.Manager) *UserService {
	return &UserService{userRepo: userRepo, validator: validator, flags: flags}
}

// ListUsers returns every user with posts attached.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) CreateUser(ctx context.Context, payload map[string]any) (*models.User, error) {
	values, err := s.validator.Validate(ctx, validation.UserRules(0), payload)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:  values.String("name"),
		Email: values.String("email"),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.ResourceMutations.WithLabelValues("user", "create").Inc()
	return user, nil
}

// GetUser returns the user with posts attached.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithPosts(ctx, id)
}

// UpdateUser replaces name and email. Both fields are required on update.
func (s *UserService) UpdateUser(ctx context.Context, id uint, payload map[string]any) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var ignoreID uint
	if s.flags.Enabled(featureflags.UserUpdateIgnoreOwnEmail, id) {
		ignoreID = id
	}

	values, err := s.validator.Validate(ctx, validation.UserRules(ignoreID), payload)
	if err != nil {
		return nil, err
	}

	user.Name = values.String("name")
	user.Email = values.String("email")
	user.Posts = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	observability.ResourceMutations.WithLabelValues("user", "update").Inc()
	return user, nil
}

// DeleteUser removes the user together with the user's posts.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	observability.ResourceMutations.WithLabelValues("user", "delete").Inc()
	return nil
}

// ListUserPosts returns the user's posts without the embedded user.
func (s *UserService) ListUserPosts(ctx context.Context, id uint) ([]models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.userRepo.ListPosts(ctx, id)
}
