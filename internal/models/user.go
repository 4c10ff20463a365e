package models

import "github.com/google/uuid"

type Role string

const (
	AdminRole Role = "admin"
	UserRole  Role = "user"
)

// User is the actor on whose behalf transcoding jobs are created.
type User struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	Role     Role      `json:"role" db:"role"`
}
