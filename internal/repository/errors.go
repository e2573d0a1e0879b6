// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"strings"

	"postboard/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Messages for constraint violations that race past validation. They match
// the validation layer's wording for the same fields.
const (
	emailTakenMessage  = "The email has already been taken."
	userInvalidMessage = "The selected user id is invalid."
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// translateError maps store errors to AppErrors. resource names the entity
// for record-not-found.
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource)
	case isUniqueConstraintError(err):
		return models.NewFieldValidationError(emailTakenMessage, map[string][]string{
			"email": {emailTakenMessage},
		})
	case isForeignKeyError(err):
		return models.NewFieldValidationError(userInvalidMessage, map[string][]string{
			"user_id": {userInvalidMessage},
		})
	default:
		return models.NewInternalError(err)
	}
}
