package models

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDenied   RequestStatus = "denied"
)

// AssignmentRequest is a pending reassignment proposal awaiting review.
// Approval records the decision only; it does not perform the underlying
// reassignment.
type AssignmentRequest struct {
	ID             uint64        `gorm:"primarykey" json:"id"`
	OrganizationID uint64        `gorm:"not null;index" json:"organization_id"`
	WorkerID       uint64        `gorm:"not null;index" json:"worker_id"`
	TaskID         uint64        `gorm:"not null" json:"task_id"`
	RequestedBy    uint64        `gorm:"not null" json:"requested_by"`
	Status         RequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewedBy     *uint64       `json:"reviewed_by"`
	ReviewedAt     *time.Time    `json:"reviewed_at"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Relations
	Worker Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Task   Task   `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
