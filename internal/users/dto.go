package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/pkg/db/models"
	"github.com/ballonsurprise/backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID         `json:"id"`
	Email       string            `json:"email"`
	DisplayName string            `json:"displayName"`
	LoginMethod enums.LoginMethod `json:"loginMethod"`
	LastLoginAt *time.Time        `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// UpsertUserDTO holds the data required by the repo to create or refresh an
// account row during login.
type UpsertUserDTO struct {
	Email        string
	DisplayName  string
	LoginMethod  enums.LoginMethod
	PasswordHash *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		LoginMethod: u.LoginMethod,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (d UpsertUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        d.Email,
		DisplayName:  d.DisplayName,
		LoginMethod:  d.LoginMethod,
		PasswordHash: d.PasswordHash,
	}
}
