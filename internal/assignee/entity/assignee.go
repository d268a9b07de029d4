package entity

import "time"

// Assignee is a non-login responsible party to whom documents can be assigned.
type Assignee struct {
	ID         int64     `db:"id" json:"id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Department *string   `db:"department" json:"department,omitempty"`
	Position   *string   `db:"position" json:"position,omitempty"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the display name used in document listings and reports.
func (a *Assignee) FullName() string {
	return a.FirstName + " " + a.LastName
}
