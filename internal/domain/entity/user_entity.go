package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt hash of the peppered password.
// Users are created on registration and never updated.
type User struct {
	ID           int64
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the identity exposed to other users.
type PublicUser struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

func (u *User) Public() PublicUser {
	return PublicUser{Name: u.Name, ID: u.ID}
}

// Principal is the resolved identity attached to an authenticated request.
type Principal struct {
	Name string
	ID   int64
}
