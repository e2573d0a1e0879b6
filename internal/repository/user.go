package repository

import (
	"context"

	"postboard/internal/cache"
	"postboard/internal/models"
	"postboard/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// List returns all users ordered by id, each with its posts.
	List(ctx context.Context) ([]models.User, error)
	// GetByID returns the user without posts.
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user and all of the user's posts in one transaction.
	Delete(ctx context.Context, id uint) error
	// ListPosts returns the user's posts ordered by id, without the embedded user.
	ListPosts(ctx context.Context, userID uint) ([]models.Post, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	defer observability.TrackQuery("select", "users")()

	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).Preload("Posts", orderByID).Order("id ASC").Find(&users).Error; err != nil {
		return nil, translateError(err, "User")
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		defer observability.TrackQuery("select", "users")()
		return translateError(r.db.WithContext(ctx).First(&user, id).Error, "User")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).Preload("Posts", orderByID).First(&user, id).Error; err != nil {
		return nil, translateError(err, "User")
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("insert", "users")()

	if err := r.db.WithContext(ctx).Omit("Posts").Create(user).Error; err != nil {
		return translateError(err, "User")
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("update", "users")()

	res := r.db.WithContext(ctx).Model(user).Select("name", "email").Updates(user)
	if res.Error != nil {
		return translateError(res.Error, "User")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User")
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "users")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return translateError(err, "User")
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) ListPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	posts := make([]models.Post, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, translateError(err, "Post")
	}
	return posts, nil
}
