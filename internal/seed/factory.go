package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"postboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds fake users and posts and persists them to the database.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
}

// NewFactory creates a Factory bound to db. A zero seed picks a random one.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	return &Factory{db: db, faker: gofakeit.New(seed)}
}

// BuildUser returns an unsaved user with a unique fake email.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	verified := time.Now().UTC()
	user := &models.User{
		Name: f.faker.Name(),
		Email: fmt.Sprintf("%s.%s@%s",
			strings.ToLower(f.faker.Username()),
			f.faker.UUID()[:8],
			f.faker.DomainName(),
		),
		EmailVerifiedAt: &verified,
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildPost returns an unsaved post owned by user.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:   truncate(strings.TrimSuffix(f.faker.Sentence(6), "."), 255),
		Content: f.faker.Paragraph(3, 4, 12, "\n\n"),
		UserID:  user.ID,
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreateUser constructs and persists a fake user.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.WithContext(ctx).Omit("Posts").Create(user).Error; err != nil {
		return nil, fmt.Errorf("create fake user: %w", err)
	}
	return user, nil
}

// CreateUsersWithPosts persists n users with postsPerUser posts each.
func (f *Factory) CreateUsersWithPosts(ctx context.Context, n, postsPerUser int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < n; i++ {
			user := f.BuildUser()
			if err := tx.Omit("Posts").Create(user).Error; err != nil {
				return fmt.Errorf("create fake user: %w", err)
			}
			if postsPerUser > 0 {
				posts := make([]*models.Post, 0, postsPerUser)
				for j := 0; j < postsPerUser; j++ {
					posts = append(posts, f.BuildPost(user))
				}
				if err := tx.Omit("User").Create(&posts).Error; err != nil {
					return fmt.Errorf("create fake posts: %w", err)
				}
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
