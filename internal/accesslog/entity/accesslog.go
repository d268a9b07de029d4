package entity

import "time"

// AccessLog is one audit row per login attempt. UserID is nil for attempts
// with an unknown matricula.
type AccessLog struct {
	ID            int64      `db:"id" json:"id"`
	UserID        *int64     `db:"user_id" json:"user_id,omitempty"`
	Matricula     string     `db:"matricula" json:"matricula"`
	LoginTime     time.Time  `db:"login_time" json:"login_time"`
	LogoutTime    *time.Time `db:"logout_time" json:"logout_time,omitempty"`
	IPAddress     string     `db:"ip_address" json:"ip_address"`
	UserAgent     string     `db:"user_agent" json:"user_agent"`
	SessionActive bool       `db:"session_active" json:"session_active"`
	LoginSuccess  bool       `db:"login_success" json:"login_success"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// AccessLogWithUser joins the user's display name for the admin listing.
type AccessLogWithUser struct {
	AccessLog
	UserName *string `db:"user_name" json:"user_name,omitempty"`
}
