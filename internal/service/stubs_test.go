package service

import (
	"context"
	"errors"
	"testing"

	"postboard/internal/models"
	"postboard/internal/repository"
	"postboard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	listFn             func(ctx context.Context) ([]models.User, error)
	getByIDFn          func(ctx context.Context, id uint) (*models.User, error)
	getByIDWithPostsFn func(ctx context.Context, id uint) (*models.User, error)
	createFn           func(ctx context.Context, user *models.User) error
	updateFn           func(ctx context.Context, user *models.User) error
	deleteFn           func(ctx context.Context, id uint) error
	listPostsFn        func(ctx context.Context, userID uint) ([]models.Post, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		listFn: func(context.Context) ([]models.User, error) { return []models.User{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Existing", Email: "existing@example.com"}, nil
		},
		getByIDWithPostsFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Posts: []models.Post{}}, nil
		},
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		updateFn:    func(context.Context, *models.User) error { return nil },
		deleteFn:    func(context.Context, uint) error { return nil },
		listPostsFn: func(context.Context, uint) ([]models.Post, error) { return []models.Post{}, nil },
	}
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) { return s.listFn(ctx) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *userRepoStub) ListPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.listPostsFn(ctx, userID)
}

type postRepoStub struct {
	listFn    func(ctx context.Context) ([]models.Post, error)
	getByIDFn func(ctx context.Context, id uint) (*models.Post, error)
	createFn  func(ctx context.Context, post *models.Post) error
	updateFn  func(ctx context.Context, post *models.Post) error
	deleteFn  func(ctx context.Context, id uint) error
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn: func(context.Context) ([]models.Post, error) { return []models.Post{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Title: "Existing", Content: "Body", UserID: 1, User: &models.User{ID: 1}}, nil
		},
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 10
			return nil
		},
		updateFn: func(context.Context, *models.Post) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) { return s.listFn(ctx) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error { return s.updateFn(ctx, p) }
func (s *postRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }

// lookupStub reports taken emails and existing user ids.
type lookupStub struct {
	takenEmails map[string]uint
	userIDs     map[int64]bool
}

func newLookup() *lookupStub {
	return &lookupStub{
		takenEmails: map[string]uint{"taken@example.com": 7},
		userIDs:     map[int64]bool{1: true, 2: true},
	}
}

func (l *lookupStub) RecordExists(_ context.Context, q repository.LookupQuery) (bool, error) {
	switch q.Column {
	case "email":
		owner, ok := l.takenEmails[q.Value.(string)]
		return ok && owner != q.IgnoreID, nil
	case "id":
		return l.userIDs[q.Value.(int64)], nil
	}
	return false, errors.New("unexpected lookup")
}

func newValidator() *validation.Validator {
	return validation.New(newLookup())
}

func assertValidationError(t *testing.T, err error, fields ...string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	for _, f := range fields {
		assert.Contains(t, appErr.Fields, f)
	}
}

func assertNotFound(t *testing.T, err error, message string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}
