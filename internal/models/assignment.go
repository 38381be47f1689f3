package models

import "time"

type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "assigned"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusReassigned AssignmentStatus = "reassigned"
)

// Assignment schedules a worker onto a task for one calendar date.
// A worker has at most one assignment per date; reassignment deletes the
// prior row before inserting the new one (last write wins).
type Assignment struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	OrganizationID uint64           `gorm:"not null;index" json:"organization_id"`
	TaskID         uint64           `gorm:"not null;index" json:"task_id"`
	WorkerID       uint64           `gorm:"not null;index" json:"worker_id"`
	AssignedDate   string           `gorm:"type:varchar(10);not null;index" json:"assigned_date"`
	Status         AssignmentStatus `gorm:"type:varchar(20);not null;default:'assigned'" json:"status"`
	HoursWorked    *float64         `json:"hours_worked"`
	AssignedBy     uint64           `json:"assigned_by"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relations
	Task   Task   `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Worker Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}
