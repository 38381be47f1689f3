package models

import (
	"time"

	"gorm.io/gorm"
)

type Organization struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Profiles []UserProfile `gorm:"foreignKey:OrganizationID" json:"profiles,omitempty"`
	JobSites []JobSite     `gorm:"foreignKey:OrganizationID" json:"job_sites,omitempty"`
	Workers  []Worker      `gorm:"foreignKey:OrganizationID" json:"workers,omitempty"`
}
