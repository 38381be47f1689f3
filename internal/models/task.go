package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPlanned   TaskStatus = "planned"
	TaskStatusActive    TaskStatus = "active"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task is a unit of work at a job site. JobSiteID may be nil for
// organization-level work not yet placed on a site.
type Task struct {
	ID                 uint64         `gorm:"primarykey" json:"id"`
	OrganizationID     uint64         `gorm:"not null;index" json:"organization_id"`
	JobSiteID          *uint64        `gorm:"index" json:"job_site_id"`
	Name               string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Location           string         `gorm:"type:varchar(255)" json:"location"`
	StartDate          string         `gorm:"type:varchar(10)" json:"start_date"`
	EndDate            string         `gorm:"type:varchar(10)" json:"end_date"`
	RequiredOperators  int            `gorm:"not null;default:0" json:"required_operators"`
	RequiredLaborers   int            `gorm:"not null;default:0" json:"required_laborers"`
	RequiredCarpenters int            `gorm:"not null;default:0" json:"required_carpenters"`
	RequiredMasons     int            `gorm:"not null;default:0" json:"required_masons"`
	Status             TaskStatus     `gorm:"type:varchar(20);not null;default:'planned'" json:"status"`
	CreatedBy          uint64         `json:"created_by"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	JobSite     *JobSite     `gorm:"foreignKey:JobSiteID" json:"job_site,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
