package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       uuid.UUID `bun:",pk,type:uuid" json:"_id"`
	FullName string    `bun:",notnull" json:"fullName"`
	Email    string    `bun:",unique,notnull" json:"email"`

	// Password holds the bcrypt hash. It never leaves this process:
	// every response goes through Public().
	Password string `bun:",notnull" json:"-"`

	ProfilePic string `bun:",notnull,default:''" json:"profilePic"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// PublicUser is the projection sent to clients, with the password
// hash field removed rather than merely hidden.
type PublicUser struct {
	ID         uuid.UUID `json:"_id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
