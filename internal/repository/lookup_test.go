package repository

import (
	"context"
	"testing"

	"postboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLookup(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	lookup := NewRecordLookup(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "Taro", "taro@example.com")

	tests := []struct {
		name string
		q    LookupQuery
		want bool
	}{
		{"email taken", LookupQuery{Table: "users", Column: "email", Value: "taro@example.com"}, true},
		{"email free", LookupQuery{Table: "users", Column: "email", Value: "nobody@example.com"}, false},
		{"own row ignored", LookupQuery{Table: "users", Column: "email", Value: "taro@example.com", IgnoreID: u.ID}, false},
		{"id exists", LookupQuery{Table: "users", Column: "id", Value: u.ID}, true},
		{"id missing", LookupQuery{Table: "users", Column: "id", Value: u.ID + 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lookup.RecordExists(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordLookup_RejectsUnknownColumns(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	lookup := NewRecordLookup(db)

	_, err := lookup.RecordExists(context.Background(), LookupQuery{Table: "users", Column: "name; DROP TABLE users", Value: "x"})
	assert.Error(t, err)

	_, err = lookup.RecordExists(context.Background(), LookupQuery{Table: "secrets", Column: "id", Value: 1})
	assert.Error(t, err)
}

func TestRecordLookup_StoreFailureIsAnError(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	lookup := NewRecordLookup(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = lookup.RecordExists(context.Background(), LookupQuery{Table: "users", Column: "email", Value: "a@example.com"})
	assert.Error(t, err)
}
