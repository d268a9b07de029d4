package entity

import "time"

// Document status values as stored and served. The labels are the original
// Portuguese strings used by the dashboard.
const (
	StatusInProgress = "Em Andamento"
	StatusCompleted  = "Concluído"
	StatusArchived   = "Arquivado"
)

// Priority labels.
const (
	PriorityLow    = "baixa"
	PriorityNormal = "normal"
	PriorityHigh   = "alta"
)

// Document is a judicial document row. Exactly one of AssignedTo (login user)
// or DocumentAssigneeID (non-login responsible) is meaningful at a time; the
// schema does not enforce it.
type Document struct {
	ID                 int64      `db:"id" json:"id"`
	Title              string     `db:"title" json:"title"`
	Type               string     `db:"type" json:"type"`
	Status             string     `db:"status" json:"status"`
	AssignedTo         *int64     `db:"assigned_to" json:"assigned_to,omitempty"`
	DocumentAssigneeID *int64     `db:"document_assignee_id" json:"document_assignee_id,omitempty"`
	Deadline           *time.Time `db:"deadline" json:"deadline,omitempty"`
	Description        *string    `db:"description" json:"description,omitempty"`
	Priority           string     `db:"priority" json:"priority"`
	CompletionDate     *time.Time `db:"completion_date" json:"completion_date,omitempty"`
	ProcessNumber      *string    `db:"process_number" json:"process_number,omitempty"`
	PrisonerName       *string    `db:"prisoner_name" json:"prisoner_name,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// DocumentWithNames is the list projection joined with responsible display names.
type DocumentWithNames struct {
	Document
	AssignedUserName     *string `db:"assigned_user_name" json:"assigned_user_name,omitempty"`
	AssignedAssigneeName *string `db:"assigned_assignee_name" json:"assigned_assignee_name,omitempty"`
	AssigneeDepartment   *string `db:"assignee_department" json:"department,omitempty"`
	AssigneePosition     *string `db:"assignee_position" json:"position,omitempty"`
}

// ValidStatus reports whether s is one of the three document states.
func ValidStatus(s string) bool {
	return s == StatusInProgress || s == StatusCompleted || s == StatusArchived
}

// ValidTransition reports whether moving from -> to is allowed. The chain is
// Em Andamento -> Concluído -> Arquivado, with Arquivado -> Concluído
// permitted as an explicit unarchive. Setting the same status again is a no-op
// and allowed.
func ValidTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusInProgress:
		return to == StatusCompleted
	case StatusCompleted:
		return to == StatusArchived || to == StatusInProgress
	case StatusArchived:
		return to == StatusCompleted
	}
	return false
}
