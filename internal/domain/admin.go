package domain

import "time"

// Admin is a backoffice user allowed to manage the catalog.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleRoot is the bootstrap administrator role.
const RoleRoot = "root"
