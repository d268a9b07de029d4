package admin

import "time"

// SystemName tags exported backups.
const SystemName = "SEAP - Sistema de Gestão de Documentos Judiciais"

// BackupVersion is the envelope version tag.
const BackupVersion = "2.0"

// Backup row types carry every column verbatim, primary keys and password
// hashes included, so a restore reproduces the exact pre-export state.

type UserRow struct {
	ID           int64      `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        *string    `db:"email" json:"email"`
	Role         string     `db:"role" json:"role"`
	Matricula    string     `db:"matricula" json:"matricula"`
	PasswordHash string     `db:"password_hash" json:"password_hash"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type AssigneeRow struct {
	ID         int64     `db:"id" json:"id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Department *string   `db:"department" json:"department"`
	Position   *string   `db:"position" json:"position"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type DocTypeRow struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type DocumentRow struct {
	ID                 int64      `db:"id" json:"id"`
	Title              string     `db:"title" json:"title"`
	Type               string     `db:"type" json:"type"`
	Status             string     `db:"status" json:"status"`
	AssignedTo         *int64     `db:"assigned_to" json:"assigned_to"`
	DocumentAssigneeID *int64     `db:"document_assignee_id" json:"document_assignee_id"`
	Deadline           *time.Time `db:"deadline" json:"deadline"`
	Description        *string    `db:"description" json:"description"`
	Priority           string     `db:"priority" json:"priority"`
	CompletionDate     *time.Time `db:"completion_date" json:"completion_date"`
	ProcessNumber      *string    `db:"process_number" json:"process_number"`
	PrisonerName       *string    `db:"prisoner_name" json:"prisoner_name"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

type AccessLogRow struct {
	ID            int64      `db:"id" json:"id"`
	UserID        *int64     `db:"user_id" json:"user_id"`
	Matricula     string     `db:"matricula" json:"matricula"`
	LoginTime     time.Time  `db:"login_time" json:"login_time"`
	LogoutTime    *time.Time `db:"logout_time" json:"logout_time"`
	IPAddress     string     `db:"ip_address" json:"ip_address"`
	UserAgent     string     `db:"user_agent" json:"user_agent"`
	SessionActive bool       `db:"session_active" json:"session_active"`
	LoginSuccess  bool       `db:"login_success" json:"login_success"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// RecordCounts tallies rows per table in the envelope and import responses.
type RecordCounts struct {
	Users             int `json:"users"`
	DocumentAssignees int `json:"documentAssignees"`
	DocumentTypes     int `json:"documentTypes"`
	Documents         int `json:"documents"`
	AccessLogs        int `json:"accessLogs"`
}

// BackupMetadata describes one export.
type BackupMetadata struct {
	ExportDate   time.Time    `json:"exportDate"`
	SystemName   string       `json:"systemName"`
	Version      string       `json:"version"`
	BackupID     string       `json:"backupId"`
	TotalRecords RecordCounts `json:"totalRecords"`
}

// BackupData holds the full table dumps.
type BackupData struct {
	Users             []UserRow      `json:"users"`
	DocumentAssignees []AssigneeRow  `json:"documentAssignees"`
	DocumentTypes     []DocTypeRow   `json:"documentTypes"`
	Documents         []DocumentRow  `json:"documents"`
	AccessLogs        []AccessLogRow `json:"accessLogs"`
}

// Backup is the export envelope.
type Backup struct {
	Metadata BackupMetadata `json:"metadata"`
	Data     BackupData     `json:"data"`
}
