package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all records.
type DefaultModel struct {
	ID        uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the resource
	CreatedAt time.Time `json:"created_at" example:"2024-03-01T19:28:44.491514Z"`  // Time the resource was created
	UpdatedAt time.Time `json:"updated_at" example:"2024-03-02T08:12:01.114512Z"`  // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}

// BeforeCreate generates a UUID for the resource unless one is already set.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// normalize trims whitespace and converts names to NFC so that
// visually identical names compare equal.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeOptional normalizes s and returns nil for empty strings.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}

	n := normalize(*s)
	if n == "" {
		return nil
	}

	return &n
}

// dest returns the struct passed to Updates, whether it was passed
// by value or by pointer.
func dest[T any](tx *gorm.DB) (T, bool) {
	switch d := tx.Statement.Dest.(type) {
	case T:
		return d, true
	case *T:
		return *d, true
	}

	var zero T
	return zero, false
}
