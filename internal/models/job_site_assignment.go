package models

import "time"

type SiteRole string

const (
	SiteRoleSuperintendent SiteRole = "superintendent"
	SiteRoleEngineer       SiteRole = "engineer"
	SiteRoleEngineerAsSupt SiteRole = "engineer_as_superintendent"
	SiteRoleForeman        SiteRole = "foreman"
	SiteRoleWorker         SiteRole = "worker"
)

// JobSiteAssignment binds a user to a job site with a site-scoped role.
// At most one row per (user, site) has IsActive=true; reassigning to the
// same site deactivates the prior row instead of duplicating it.
type JobSiteAssignment struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	OrganizationID uint64    `gorm:"not null;index" json:"organization_id"`
	UserID         uint64    `gorm:"not null;index" json:"user_id"`
	JobSiteID      uint64    `gorm:"not null;index" json:"job_site_id"`
	Role           SiteRole  `gorm:"type:varchar(30);not null" json:"role"`
	StartDate      string    `gorm:"type:varchar(10)" json:"start_date"`
	EndDate        *string   `gorm:"type:varchar(10)" json:"end_date"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	User    UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JobSite JobSite     `gorm:"foreignKey:JobSiteID" json:"job_site,omitempty"`
}
