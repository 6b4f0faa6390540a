package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a person who can request access to activities.
type User struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntityID implements repository.Entity.
func (u User) EntityID() uuid.UUID { return u.ID }
