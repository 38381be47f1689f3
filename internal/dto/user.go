package dto

import "github.com/coachtui/crewcommand/internal/models"

// UserProfileDTO is the public shape of a user profile.
type UserProfileDTO struct {
	ID             uint64          `json:"id"`
	OrganizationID uint64          `json:"organization_id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	BaseRole       models.BaseRole `json:"base_role"`
}

// ToUserProfileDTO converts a UserProfile model to its public shape.
func ToUserProfileDTO(user *models.UserProfile) UserProfileDTO {
	return UserProfileDTO{
		ID:             user.ID,
		OrganizationID: user.OrganizationID,
		Email:          user.Email,
		Name:           user.Name,
		BaseRole:       user.BaseRole,
	}
}
