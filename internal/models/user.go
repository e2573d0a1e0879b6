// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"
	"time"
)

// User represents an account that can author posts.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Email           string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	// Posts is nil unless eagerly loaded; a loaded user without posts has an empty slice.
	Posts []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type userAlias User

// MarshalJSON renders "posts" only when the relation was loaded, so a loaded
// user without posts serializes as "posts": [].
func (u User) MarshalJSON() ([]byte, error) {
	out := struct {
		userAlias
		Posts *[]Post `json:"posts,omitempty"`
	}{userAlias: userAlias(u)}
	if u.Posts != nil {
		out.Posts = &u.Posts
	}
	return json.Marshal(out)
}

// UnmarshalJSON mirrors MarshalJSON.
func (u *User) UnmarshalJSON(data []byte) error {
	aux := struct {
		*userAlias
		Posts *[]Post `json:"posts"`
	}{userAlias: (*userAlias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Posts != nil {
		u.Posts = *aux.Posts
	}
	return nil
}
