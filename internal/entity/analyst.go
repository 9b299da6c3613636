package entity

import (
	"time"

	"github.com/google/uuid"
)

// Analyst is a sales analyst allowed to read and export search history.
type Analyst struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
