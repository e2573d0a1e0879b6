package models

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestUserJSON_PostsOnlyWhenLoaded(t *testing.T) {
	t.Parallel()

	t.Run("not loaded", func(t *testing.T) {
		out := decodeMap(t, User{ID: 1, Name: "Ann", Email: "a@example.com"})
		assert.NotContains(t, out, "posts")
		assert.Contains(t, out, "email_verified_at")
		assert.Nil(t, out["email_verified_at"])
	})

	t.Run("loaded but empty", func(t *testing.T) {
		out := decodeMap(t, User{ID: 1, Posts: []Post{}})
		require.Contains(t, out, "posts")
		assert.Equal(t, []any{}, out["posts"])
	})

	t.Run("loaded", func(t *testing.T) {
		out := decodeMap(t, &User{ID: 1, Posts: []Post{{ID: 7, Title: "t", UserID: 1}}})
		posts, ok := out["posts"].([]any)
		require.True(t, ok)
		require.Len(t, posts, 1)
		assert.NotContains(t, posts[0].(map[string]any), "user")
	})
}

func TestUserJSON_RoundTripKeepsPosts(t *testing.T) {
	t.Parallel()

	in := User{ID: 3, Name: "Ann", Posts: []Post{{ID: 1, UserID: 3}}}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out User
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, uint(3), out.ID)
	assert.Len(t, out.Posts, 1)

	var bare User
	require.NoError(t, json.Unmarshal([]byte(`{"id":4}`), &bare))
	assert.Nil(t, bare.Posts)
}

func TestPostJSON_UserOnlyWhenLoaded(t *testing.T) {
	t.Parallel()

	out := decodeMap(t, Post{ID: 1, UserID: 2})
	assert.NotContains(t, out, "user")

	out = decodeMap(t, Post{ID: 1, UserID: 2, User: &User{ID: 2}})
	user, ok := out["user"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, user, "posts")
}

func TestAppError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Server Error: boom", err.Error())

	nf := NewNotFoundError("User")
	assert.Equal(t, "User not found", nf.Error())
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsValidation(nf))
	assert.True(t, IsValidation(NewValidationError("x")))
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		err    error
		want   string
	}{
		{"not found", fiber.StatusNotFound, NewNotFoundError("Post"), `{"message":"Post not found"}`},
		{
			"validation",
			fiber.StatusUnprocessableEntity,
			NewFieldValidationError("The name field is required.", map[string][]string{"name": {"The name field is required."}}),
			`{"message":"The name field is required.","errors":{"name":["The name field is required."]}}`,
		},
		{"internal hides cause", fiber.StatusInternalServerError, NewInternalError(errors.New("dsn leaked")), `{"message":"Server Error"}`},
		{"plain 500 hides cause", fiber.StatusInternalServerError, errors.New("dsn leaked"), `{"message":"Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return RespondWithError(c, tt.status, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			var want map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.want), &want))
			assert.Equal(t, want, body)
		})
	}
}
