// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the authorization role of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User represents a user of the finance dashboard.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Avatar       string // Public path of the uploaded avatar, empty when unset
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with the default role.
func NewUser(name, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
