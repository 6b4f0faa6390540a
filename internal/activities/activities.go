// Package activities implements the activity commands and queries.
package activities

import "github.com/google/uuid"

// CreateActivity registers a new activity.
type CreateActivity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateActivity replaces the name and description of an activity.
type UpdateActivity struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// DeleteActivity removes an activity together with its access requests.
type DeleteActivity struct {
	ID uuid.UUID
}

// GetActivity reads one activity.
type GetActivity struct {
	ID uuid.UUID
}

// ListActivities reads every activity.
type ListActivities struct{}
