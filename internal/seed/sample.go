// Package seed provides helpers to create demo and test data for the
// application database.
package seed

import (
	"context"
	"fmt"
	"log"

	"postboard/internal/models"

	"gorm.io/gorm"
)

type sampleUser struct {
	Name  string
	Email string
}

var sampleUsers = []sampleUser{
	{Name: "田中 太郎", Email: "taro@example.com"},
	{Name: "佐藤 花子", Email: "hanako@example.com"},
	{Name: "山田 次郎", Email: "jiro@example.com"},
}

func samplePosts(user *models.User) []models.Post {
	return []models.Post{
		{
			Title:   user.Name + "の最初の投稿",
			Content: "これは" + user.Name + "の最初の投稿です。よろしくお願いします！",
		},
		{
			Title:   user.Name + "の技術記事",
			Content: "Go と OpenAPI を使ったスキーマ駆動開発について書いてみました。",
		},
	}
}

// SampleData inserts three demo users with two posts each. Users are matched
// by email and posts by title and owner, so running it again changes nothing.
// It is a no-op when the schema has not been created yet.
func SampleData(ctx context.Context, db *gorm.DB) error {
	m := db.WithContext(ctx).Migrator()
	for _, table := range []any{&models.User{}, &models.Post{}} {
		if !m.HasTable(table) {
			log.Printf("seed: %T table does not exist, skipping sample data", table)
			return nil
		}
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, su := range sampleUsers {
			var user models.User
			if err := tx.Where(models.User{Email: su.Email}).
				Attrs(models.User{Name: su.Name}).
				FirstOrCreate(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", su.Email, err)
			}

			for _, sp := range samplePosts(&user) {
				var post models.Post
				if err := tx.Where(models.Post{Title: sp.Title, UserID: user.ID}).
					Attrs(models.Post{Content: sp.Content}).
					FirstOrCreate(&post).Error; err != nil {
					return fmt.Errorf("seed post %q: %w", sp.Title, err)
				}
			}
		}
		return nil
	})
}
