package repository

import (
	"context"
	"fmt"

	"postboard/internal/observability"

	"gorm.io/gorm"
)

// LookupQuery asks whether a row with Column = Value exists in Table,
// optionally ignoring the row whose id is IgnoreID.
type LookupQuery struct {
	Table    string
	Column   string
	Value    any
	IgnoreID uint
}

// RecordLookup answers existence questions for the unique and exists
// validation rules. Store failures are returned as errors, never as false.
type RecordLookup interface {
	RecordExists(ctx context.Context, q LookupQuery) (bool, error)
}

// lookupColumns lists the table columns rules may reference.
var lookupColumns = map[string]map[string]bool{
	"users": {"id": true, "email": true},
	"posts": {"id": true},
}

type recordLookup struct {
	db *gorm.DB
}

// NewRecordLookup returns a RecordLookup backed by db.
func NewRecordLookup(db *gorm.DB) RecordLookup {
	return &recordLookup{db: db}
}

func (l *recordLookup) RecordExists(ctx context.Context, q LookupQuery) (bool, error) {
	if !lookupColumns[q.Table][q.Column] {
		return false, fmt.Errorf("lookup on %s.%s is not allowed", q.Table, q.Column)
	}
	defer observability.TrackQuery("count", q.Table)()

	tx := l.db.WithContext(ctx).Table(q.Table).Where(fmt.Sprintf("%s = ?", q.Column), q.Value)
	if q.IgnoreID != 0 {
		tx = tx.Where("id <> ?", q.IgnoreID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup %s.%s: %w", q.Table, q.Column, err)
	}
	return count > 0, nil
}
