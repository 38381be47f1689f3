package models

import (
	"time"

	"gorm.io/gorm"
)

type JobSiteStatus string

const (
	JobSiteStatusActive    JobSiteStatus = "active"
	JobSiteStatusOnHold    JobSiteStatus = "on_hold"
	JobSiteStatusCompleted JobSiteStatus = "completed"
)

type JobSite struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Address        string         `gorm:"type:varchar(255)" json:"address"`
	Status         JobSiteStatus  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartDate      string         `gorm:"type:varchar(10)" json:"start_date"`
	EndDate        string         `gorm:"type:varchar(10)" json:"end_date"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization        `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Assignments  []JobSiteAssignment `gorm:"foreignKey:JobSiteID" json:"assignments,omitempty"`
	Tasks        []Task              `gorm:"foreignKey:JobSiteID" json:"tasks,omitempty"`
}
