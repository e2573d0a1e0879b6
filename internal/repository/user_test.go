package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"postboard/internal/cache"
	"postboard/internal/models"
	"postboard/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func assertCode(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestUserRepository_GetByID_SQL(t *testing.T) {
	cache.SetClient(nil)
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		userID       uint
		mockBehavior func()
		wantCode     string
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "email"}).
					AddRow(1, "Taro", "taro@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(99, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantCode: models.CodeNotFound,
		},
		{
			name:   "Database Error",
			userID: 2,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(2, 1).
					WillReturnError(errors.New("connection timeout"))
			},
			wantCode: models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode)
				assert.Nil(t, user)
			} else if assert.NoError(t, err) {
				assert.Equal(t, "Taro", user.Name)
				assert.Nil(t, user.Posts)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_UniqueViolationFromPostgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_users_email\""})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Name: "Taro", Email: "taro@example.com"})

	appErr := assertCode(t, err, models.CodeValidation)
	assert.Equal(t, []string{"The email has already been taken."}, appErr.Fields["email"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CRUD(t *testing.T) {
	cache.SetClient(nil)
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "Hanako", Email: "hanako@example.com"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hanako@example.com", got.Email)

	withPosts, err := repo.GetByIDWithPosts(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, withPosts.Posts)
	assert.Empty(t, withPosts.Posts)

	got.Name = "Hanako S."
	require.NoError(t, repo.Update(ctx, got))
	reloaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hanako S.", reloaded.Name)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	assertCode(t, err, models.CodeNotFound)

	assertCode(t, repo.Delete(ctx, user.ID), models.CodeNotFound)
	assertCode(t, repo.Update(ctx, &models.User{ID: user.ID, Name: "x", Email: "x@example.com"}), models.CodeNotFound)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "A", Email: "dup@example.com"}))
	err := repo.Create(ctx, &models.User{Name: "B", Email: "dup@example.com"})

	appErr := assertCode(t, err, models.CodeValidation)
	assert.Contains(t, appErr.Fields, "email")
}

func TestUserRepository_ListOrdersByIDWithPosts(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a := testutil.CreateUser(t, db, "A", "a@example.com")
	b := testutil.CreateUser(t, db, "B", "b@example.com")
	testutil.CreatePost(t, db, b.ID, "b2", "c")
	testutil.CreatePost(t, db, a.ID, "a1", "c")
	testutil.CreatePost(t, db, b.ID, "b1", "c")

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, a.ID, users[0].ID)
	assert.Len(t, users[0].Posts, 1)
	require.Len(t, users[1].Posts, 2)
	assert.Less(t, users[1].Posts[0].ID, users[1].Posts[1].ID)

	posts, err := repo.ListPosts(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "b2", posts[0].Title)
	assert.Nil(t, posts[0].User)

	none, err := repo.ListPosts(ctx, a.ID+b.ID+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepository_DeleteCascadesPosts(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Owner", "owner@example.com")
	other := testutil.CreateUser(t, db, "Other", "other@example.com")
	testutil.CreatePost(t, db, owner.ID, "one", "c")
	testutil.CreatePost(t, db, owner.ID, "two", "c")
	keep := testutil.CreatePost(t, db, other.ID, "keep", "c")

	require.NoError(t, repo.Delete(ctx, owner.ID))

	var remaining []models.Post
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].ID)
}

func TestUserRepository_CacheInvalidatedOnUpdate(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NotNil(t, cache.InitRedis(mr.Addr()))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "Jiro", "jiro@example.com")

	_, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.UserKey(u.ID)))

	u.Name = "Jiro Y."
	require.NoError(t, repo.Update(ctx, u))
	assert.False(t, mr.Exists(cache.UserKey(u.ID)))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jiro Y.", got.Name)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.False(t, mr.Exists(cache.UserKey(u.ID)))
}
