package team

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table. It is the tenancy boundary:
// every authorization decision is scoped to a shared team id.
type Team struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
