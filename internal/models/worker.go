package models

import (
	"time"

	"gorm.io/gorm"
)

type WorkerRole string

const (
	WorkerRoleOperator  WorkerRole = "operator"
	WorkerRoleLaborer   WorkerRole = "laborer"
	WorkerRoleCarpenter WorkerRole = "carpenter"
	WorkerRoleMason     WorkerRole = "mason"
)

type WorkerStatus string

const (
	WorkerStatusActive   WorkerStatus = "active"
	WorkerStatusInactive WorkerStatus = "inactive"
)

// Worker is a scheduled field laborer. Most workers are not system
// users; UserID links the ones that are, so they can read their own
// timesheet. A nil JobSiteID means unassigned.
type Worker struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	UserID         *uint64        `gorm:"index" json:"user_id"`
	Name           string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Role           WorkerRole     `gorm:"type:varchar(20);not null;default:'laborer'" json:"role"`
	Skills         []string       `gorm:"serializer:json" json:"skills"`
	Status         WorkerStatus   `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	JobSiteID      *uint64        `gorm:"index" json:"job_site_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	JobSite *JobSite `gorm:"foreignKey:JobSiteID" json:"job_site,omitempty"`
}
