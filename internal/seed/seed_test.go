package seed

import (
	"context"
	"strings"
	"testing"

	"postboard/internal/models"
	"postboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSampleData_Idempotent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	require.NoError(t, SampleData(ctx, db))
	require.NoError(t, SampleData(ctx, db))

	var users []models.User
	require.NoError(t, db.Preload("Posts").Order("id").Find(&users).Error)
	require.Len(t, users, 3)

	assert.Equal(t, "田中 太郎", users[0].Name)
	assert.Equal(t, "taro@example.com", users[0].Email)
	for _, u := range users {
		require.Len(t, u.Posts, 2, u.Email)
		assert.Equal(t, u.Name+"の最初の投稿", u.Posts[0].Title)
		assert.True(t, strings.Contains(u.Posts[0].Content, u.Name))
	}

	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(6), posts)
}

func TestSampleData_KeepsExistingUser(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	existing := testutil.CreateUser(t, db, "Renamed Taro", "taro@example.com")

	require.NoError(t, SampleData(context.Background(), db))

	var user models.User
	require.NoError(t, db.Where("email = ?", "taro@example.com").First(&user).Error)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "Renamed Taro", user.Name)
}

func TestSampleData_SkipsWithoutSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_noschema?mode=memory"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.NoError(t, SampleData(context.Background(), db))
}

func TestFactory_CreateUsersWithPosts(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	f := NewFactory(db, 42)

	users, err := f.CreateUsersWithPosts(context.Background(), 4, 3)
	require.NoError(t, err)
	require.Len(t, users, 4)

	emails := map[string]bool{}
	for _, u := range users {
		assert.NotZero(t, u.ID)
		assert.NotEmpty(t, u.Name)
		assert.NotNil(t, u.EmailVerifiedAt)
		assert.False(t, emails[u.Email], "duplicate email %s", u.Email)
		emails[u.Email] = true

		var n int64
		require.NoError(t, db.Model(&models.Post{}).Where("user_id = ?", u.ID).Count(&n).Error)
		assert.Equal(t, int64(3), n)
	}
}

func TestFactory_Overrides(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	f := NewFactory(db, 7)

	user, err := f.CreateUser(context.Background(), func(u *models.User) {
		u.Email = "fixed@example.com"
		u.EmailVerifiedAt = nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed@example.com", user.Email)
	assert.Nil(t, user.EmailVerifiedAt)

	post := f.BuildPost(user, func(p *models.Post) { p.Title = "Pinned" })
	assert.Equal(t, "Pinned", post.Title)
	assert.Equal(t, user.ID, post.UserID)
	assert.NotEmpty(t, post.Content)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "田中", truncate("田中太郎", 2))
}
