package entity

import "time"

// Roles assignable to login users.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User is a login principal identified by matricula (badge number).
// The password hash never leaves the server except inside admin backups.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Role         string    `db:"role" json:"role"`
	Matricula    string    `db:"matricula" json:"matricula"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// PublicView is the projection returned to clients after login.
type PublicView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Role      string  `json:"role"`
	Matricula string  `json:"matricula"`
}

// Public returns the client-safe projection of u.
func (u *User) Public() PublicView {
	return PublicView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Matricula: u.Matricula}
}
