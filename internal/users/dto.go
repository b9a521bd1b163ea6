package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
)

// UserDTO is the public representation of a user. The credential hash never
// leaves the service layer.
type UserDTO struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Role          enums.UserRole `json:"role"`
	AvatarURL     *string        `json:"avatar_url,omitempty"`
	Contributions int            `json:"contributions"`
	CreatedAt     time.Time      `json:"created_at"`
}

// FromModel maps a persisted user to its public DTO.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		AvatarURL:     u.AvatarURL,
		Contributions: u.Contributions,
		CreatedAt:     u.CreatedAt,
	}
}

// CreateUserDTO holds the fields required to insert a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         enums.UserRole
}

// ToModel converts the DTO into a persistable model.
func (d CreateUserDTO) ToModel() *models.User {
	role := d.Role
	if !role.IsValid() {
		role = enums.UserRoleMember
	}
	return &models.User{
		ID:           uuid.New(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         role,
	}
}
