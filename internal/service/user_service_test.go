package service

import (
	"context"
	"testing"

	"postboard/internal/featureflags"
	"postboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("persists only name and email", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 3
			saved = u
			return nil
		}
		svc := NewUserService(repo, newValidator(), nil)

		user, err := svc.CreateUser(context.Background(), map[string]any{
			"name": " Taro ", "email": "taro@example.com", "email_verified_at": "2024-01-01T00:00:00Z", "id": 99.0,
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, uint(3), user.ID)
		assert.Equal(t, "Taro", user.Name)
		assert.Nil(t, user.EmailVerifiedAt)
		assert.Nil(t, user.Posts)
	})

	t.Run("validation failure does not persist", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.createFn = func(context.Context, *models.User) error {
			t.Fatal("create must not be called")
			return nil
		}
		svc := NewUserService(repo, newValidator(), nil)

		_, err := svc.CreateUser(context.Background(), map[string]any{"email": "taken@example.com"})
		assertValidationError(t, err, "name", "email")
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Parallel()

	t.Run("missing user is not found before validation", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User")
		}
		svc := NewUserService(repo, newValidator(), nil)

		_, err := svc.UpdateUser(context.Background(), 5, map[string]any{})
		assertNotFound(t, err, "User not found")
	})

	t.Run("partial payload is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), newValidator(), nil)

		_, err := svc.UpdateUser(context.Background(), 1, map[string]any{"name": "Only Name"})
		assertValidationError(t, err, "email")
	})

	t.Run("own email is taken without the flag", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), newValidator(), featureflags.NewManager(""))

		_, err := svc.UpdateUser(context.Background(), 7, map[string]any{"name": "Seven", "email": "taken@example.com"})
		assertValidationError(t, err, "email")
	})

	t.Run("own email is allowed with the flag", func(t *testing.T) {
		t.Parallel()
		flags := featureflags.NewManager(featureflags.UserUpdateIgnoreOwnEmail + "=on")
		svc := NewUserService(noopUserRepo(), newValidator(), flags)

		user, err := svc.UpdateUser(context.Background(), 7, map[string]any{"name": "Seven", "email": "taken@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Seven", user.Name)

		_, err = svc.UpdateUser(context.Background(), 8, map[string]any{"name": "Eight", "email": "taken@example.com"})
		assertValidationError(t, err, "email")
	})

	t.Run("applies and saves", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(repo, newValidator(), nil)

		user, err := svc.UpdateUser(context.Background(), 1, map[string]any{"name": "New", "email": "new@example.com"})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "new@example.com", saved.Email)
		assert.Equal(t, uint(1), user.ID)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.deleteFn = func(_ context.Context, id uint) error {
		if id == 1 {
			return nil
		}
		return models.NewNotFoundError("User")
	}
	svc := NewUserService(repo, newValidator(), nil)

	assert.NoError(t, svc.DeleteUser(context.Background(), 1))
	assertNotFound(t, svc.DeleteUser(context.Background(), 2), "User not found")
}

func TestUserService_ListUserPosts(t *testing.T) {
	t.Parallel()

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User")
		}
		repo.listPostsFn = func(context.Context, uint) ([]models.Post, error) {
			t.Fatal("posts must not be listed for a missing user")
			return nil, nil
		}
		svc := NewUserService(repo, newValidator(), nil)

		_, err := svc.ListUserPosts(context.Background(), 9)
		assertNotFound(t, err, "User not found")
	})

	t.Run("lists posts", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.listPostsFn = func(_ context.Context, userID uint) ([]models.Post, error) {
			return []models.Post{{ID: 1, UserID: userID}, {ID: 2, UserID: userID}}, nil
		}
		svc := NewUserService(repo, newValidator(), nil)

		posts, err := svc.ListUserPosts(context.Background(), 4)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})
}
