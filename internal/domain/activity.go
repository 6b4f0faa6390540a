package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is something users need permission to perform.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EntityID implements repository.Entity.
func (a Activity) EntityID() uuid.UUID { return a.ID }
