// Package models holds the server-side records persisted in PostgreSQL and
// the response shapes of the analytics endpoints.
package models

import "time"

// User is a dashboard user (table frontend_users). New users are inactive
// until an administrator activates them.
type User struct {
	ID             int64     `json:"id"`
	Nickname       string    `json:"nickname"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile is a user together with every linked account they can access.
type Profile struct {
	User
	WbLks []LinkedAccount `json:"wb_lks"`
}
