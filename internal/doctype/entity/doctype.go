package entity

import "time"

// DefaultColor is applied when a type is created without one.
const DefaultColor = "#3B82F6"

// DocType is an admin-managed document category. Documents reference it by
// name (free-text), not by id.
type DocType struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
