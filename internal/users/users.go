// Package users implements the user commands and queries.
package users

import (
	"github.com/google/uuid"
)

// CreateUser registers a new user.
type CreateUser struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// UpdateUser replaces the profile of an existing user.
type UpdateUser struct {
	ID       uuid.UUID `json:"-"`
	UserName string    `json:"userName"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
}

// DeleteUser removes a user together with their access requests.
type DeleteUser struct {
	ID uuid.UUID
}

// GetUser reads one user.
type GetUser struct {
	ID uuid.UUID
}

// ListUsers reads every user.
type ListUsers struct{}
