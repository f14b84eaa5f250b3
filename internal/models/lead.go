package models

import "time"

// LeadStatus is the staff workflow state of a lead.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusInProgress LeadStatus = "in_progress"
	LeadStatusDone       LeadStatus = "done"
)

// Valid reports whether s is a known status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusInProgress, LeadStatusDone:
		return true
	}
	return false
}

// Lead is a visitor inquiry. CreatedAt and the provenance fields (PageURL,
// Source, ProductID, SolutionID) are written once at capture.
type Lead struct {
	ID          int64      `db:"id" json:"id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	Name        string     `db:"name" json:"name"`
	Phone       string     `db:"phone" json:"phone"`
	City        string     `db:"city" json:"city"`
	Message     string     `db:"message" json:"message"`
	PageURL     string     `db:"page_url" json:"pageUrl"`
	Source      string     `db:"source" json:"source"`
	ProductID   *string    `db:"product_id" json:"productId,omitempty"`
	SolutionID  *string    `db:"solution_id" json:"solutionId,omitempty"`
	Status      LeadStatus `db:"status" json:"status"`
	ManagerNote *string    `db:"manager_note" json:"managerNote,omitempty"`
}

// LeadUpdate is the partial update staff may apply to a lead.
// Nil fields are left untouched.
type LeadUpdate struct {
	Status      *LeadStatus `json:"status,omitempty"`
	ManagerNote *string     `json:"managerNote,omitempty"`
}
