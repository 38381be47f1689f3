package models

import (
	"time"

	"gorm.io/gorm"
)

type BaseRole string

const (
	BaseRoleAdmin          BaseRole = "admin"
	BaseRoleSuperintendent BaseRole = "superintendent"
	BaseRoleEngineer       BaseRole = "engineer"
	BaseRoleForeman        BaseRole = "foreman"
	BaseRoleWorker         BaseRole = "worker"
)

// UserProfile is a system user. BaseRole is organization-wide; per-site
// roles live on JobSiteAssignment.
type UserProfile struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	BaseRole       BaseRole       `gorm:"type:varchar(20);not null;default:'worker'" json:"base_role"`
	PasswordHash   string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization    Organization        `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	SiteAssignments []JobSiteAssignment `gorm:"foreignKey:UserID" json:"-"`
}
