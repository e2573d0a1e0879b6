package service

import (
	"context"

	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/repository"
	"postboard/internal/validation"
)

type PostService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	validator PayloadValidator
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, validator PayloadValidator) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, validator: validator}
}

// ListPosts returns every post with its owner attached.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) CreatePost(ctx context.Context, payload map[string]any) (*models.Post, error) {
	values, err := s.validator.Validate(ctx, validation.PostCreateRules(), payload)
	if err != nil {
		return nil, err
	}

	userID, _ := values.Uint("user_id")
	return s.create(ctx, &models.Post{
		Title:   values.String("title"),
		Content: values.String("content"),
		UserID:  userID,
	})
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost applies the submitted fields and returns the post reloaded with
// its current owner.
func (s *PostService) UpdatePost(ctx context.Context, id uint, payload map[string]any) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	values, err := s.validator.Validate(ctx, validation.PostUpdateRules(), payload)
	if err != nil {
		return nil, err
	}

	post.Title = values.String("title")
	post.Content = values.String("content")
	if userID, ok := values.Uint("user_id"); ok {
		post.UserID = userID
	}
	post.User = nil

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.ResourceMutations.WithLabelValues("post", "update").Inc()

	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	observability.ResourceMutations.WithLabelValues("post", "delete").Inc()
	return nil
}

// CreatePostForUser creates a post owned by the user in the path. A missing
// user is reported before the payload is validated.
func (s *PostService) CreatePostForUser(ctx context.Context, userID uint, payload map[string]any) (*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	values, err := s.validator.Validate(ctx, validation.PostForUserRules(), payload)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, &models.Post{
		Title:   values.String("title"),
		Content: values.String("content"),
		UserID:  userID,
	})
}

func (s *PostService) create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.ResourceMutations.WithLabelValues("post", "create").Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}
