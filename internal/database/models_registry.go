package database

import "postboard/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM
// models, in dependency order.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
	}
}
